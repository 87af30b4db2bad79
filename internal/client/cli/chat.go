package cli

import (
	"context"
	"fmt"
)

// chat runs the assistant loop; a blank line leaves it. History carries over
// between invocations until logout.
func (a *App) chat(ctx context.Context) {
	fmt.Fprintln(a.out, "Ask the assistant anything about RentEase (blank line to leave).")
	for {
		question, err := GetSimpleText(a.reader, "You", a.out)
		if err != nil {
			return
		}
		if question == "" {
			return
		}

		reply, err := a.assistant.Ask(ctx, question)
		if err != nil {
			a.log.Error(ctx, "assistant request failed", "err", err)
			fmt.Fprintln(a.out, "The assistant is unavailable right now.")
			continue
		}
		fmt.Fprintf(a.out, "Assistant: %s\n", reply)
	}
}
