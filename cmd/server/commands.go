package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/internal/service"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		// 只对持久化存储有意义，内存存储在 serve 启动时自行填充
		seedCfg := cfg
		seedCfg.SeedDemoData = false
		seedCfg.RedisURL = ""
		store, err := openStorage(ctx, seedCfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		seeded, err := seedDemo(ctx, store, logger)
		if err != nil {
			return err
		}
		if seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "demo data loaded")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "storage is not empty, nothing to do")
		}
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := ""
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("password is required")
			}
			password = strings.TrimRight(line, "\r\n")
		}

		hash, err := service.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
