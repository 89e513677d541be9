package main

import (
	"fmt"
	"os"

	"github.com/hicham722/taskflow/internal/remind"
)

// terminalNotifier prints reminders to stderr. Permission is always
// granted; a terminal line needs no user consent.
type terminalNotifier struct{}

func (terminalNotifier) Permission() remind.Permission        { return remind.PermissionGranted }
func (terminalNotifier) RequestPermission() remind.Permission { return remind.PermissionGranted }

func (terminalNotifier) Notify(title, body string) {
	fmt.Fprintf(os.Stderr, "\n\U0001F514 %s\n   %s\n", title, body)
}
