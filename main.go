package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pairer/internal/pairer/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	// PAIRER_* variables may also come from a .env file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warn(err)
	}

	if err := pairer(); err != nil {
		logrus.Fatal(err)
	}
}

func pairer() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.ExecuteContext(ctx)
}
