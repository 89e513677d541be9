package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hicham722/taskflow/internal/client"
	"github.com/hicham722/taskflow/internal/config"
	"github.com/hicham722/taskflow/internal/dto"
	"github.com/hicham722/taskflow/internal/mirror"
	"github.com/hicham722/taskflow/internal/remind"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "taskflow",
	Short:         "TaskFlow client: manage tasks online or offline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log sync activity")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// session wires the client stack for one command invocation.
type session struct {
	coord *client.Coordinator
	store *mirror.Store
}

func newSession() (*session, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	store, err := mirror.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if !verbose {
		log.SetLevel(logrus.WarnLevel)
	}

	api := client.NewAPI(cfg.APIBaseURL, cfg.Timeout.Duration())
	coord := client.New(api, store, log)

	checker := remind.NewChecker(terminalNotifier{})
	coord.OnChange(func(tasks []dto.Task) { checker.Check(tasks, time.Now()) })

	return &session{coord: coord, store: store}, nil
}

// requireUser loads the session and refuses to continue when nobody is
// logged in.
func requireUser() (*session, dto.User, error) {
	s, err := newSession()
	if err != nil {
		return nil, dto.User{}, err
	}
	u, ok := s.coord.User()
	if !ok {
		return nil, dto.User{}, fmt.Errorf("not logged in, run `taskflow login` first")
	}
	return s, u, nil
}
