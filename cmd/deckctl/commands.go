// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/constants"
	pgstore "github.com/taibuivan/revenuegear/internal/platform/postgres"
	"github.com/taibuivan/revenuegear/internal/platform/sec"
	"github.com/taibuivan/revenuegear/internal/platform/validate"
	"github.com/taibuivan/revenuegear/internal/reader"
	"github.com/taibuivan/revenuegear/internal/terminal"
)

// newValidateCmd parses every file and reports each failure; the command
// fails if any file is invalid.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file...>",
		Short: "Validate deck YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				d, err := deck.LoadFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %q, %d spreads\n", path, d.Slug, d.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var dir string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a directory of deck files into PostgreSQL",
		Long:  `Reads every .yaml/.yml file in --dir and upserts it by slug. DATABASE_URL must be set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := os.Getenv("DATABASE_URL")
			if dsn == "" {
				return errors.New("DATABASE_URL is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			pool, err := pgstore.NewPool(ctx, dsn, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			service := deck.NewService(deck.NewPostgresRepository(pool), logger, deck.DefaultSlug)
			count, err := service.ImportDir(ctx, dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d decks from %s\n", count, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "decks", "directory containing deck files")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall import deadline")
	return cmd
}

func newReadCmd() *cobra.Command {
	var timing reader.Timing
	defaults := reader.DefaultTiming()

	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read a deck in the terminal",
		Long:  `Opens the given deck file, or the built-in deck when no file is given, in an interactive reader.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := deck.Default()
			if len(args) == 1 {
				loaded, err := deck.LoadFile(args[0])
				if err != nil {
					return err
				}
				d = loaded
			}
			return terminal.Run(d, reader.WithTiming(timing))
		},
	}

	cmd.Flags().DurationVar(&timing.Debounce, "debounce", defaults.Debounce, "minimum gap between page turns")
	cmd.Flags().DurationVar(&timing.Flip, "flip", defaults.Flip, "page flip duration")
	cmd.Flags().DurationVar(&timing.Open, "open", defaults.Open, "opening animation duration")
	cmd.Flags().DurationVar(&timing.Close, "close", defaults.Close, "closing animation duration")
	return cmd
}

// newHashPasswordCmd reads a password from stdin and prints a bcrypt hash
// suitable for ADMIN_PASSWORD_HASH.
func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Hash an admin password read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}

			password := strings.TrimRight(line, "\r\n")
			validator := &validate.Validator{}
			validator.Required("password", password)
			validator.MinLen("password", password, constants.AdminPasswordMinLength)
			if invalid := apperr.As(validator.Err()); invalid != nil {
				first := invalid.Details[0]
				return fmt.Errorf("%s: %s", first.Field, first.Message)
			}

			hash, err := sec.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
