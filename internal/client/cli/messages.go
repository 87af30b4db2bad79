package cli

import (
	"context"
	"fmt"

	"github.com/XXS1337/rentease/internal/validate"
)

func (a *App) listMessages(ctx context.Context, args []string) {
	flatID, ok := a.requireArg(args, "Usage: messages <flat-id>")
	if !ok {
		return
	}
	msgs, err := a.messages.List(ctx, flatID)
	if err != nil {
		a.log.Error(ctx, "messages fetch failed", "err", err)
		return
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages yet.")
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.SenderName, m.Content)
	}
}

func (a *App) sendMessage(ctx context.Context, args []string) {
	flatID, ok := a.requireArg(args, "Usage: send <flat-id>")
	if !ok {
		return
	}
	content, err := a.promptField(ctx, validate.FieldMessageContent, "Message", validate.Context{})
	if err != nil {
		return
	}

	errs, _, err := a.messages.Send(ctx, flatID, content)
	if err != nil {
		a.log.Error(ctx, "message send failed", "err", err)
		return
	}
	if !errs.Valid() {
		a.printErrors(errs)
		return
	}
	fmt.Fprintln(a.out, "Message sent.")
}
