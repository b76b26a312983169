package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Maintain stored refresh tokens",
}

var purgeBefore string

var tokensPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete refresh tokens that expired before a cutoff (default: now)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cutoff, err := parseCutoff(purgeBefore, time.Now())
		if err != nil {
			return err
		}

		refreshTokenRepo, db, err := newRefreshTokenRepositoryForTokenCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := refreshTokenRepo.DeleteExpired(context.Background(), cutoff)
		if err != nil {
			return err
		}

		fmt.Printf("purged %d refresh token(s) expired before %s\n", count, cutoff.Format(time.RFC3339))
		return nil
	},
}

var tokensRevokeCmd = &cobra.Command{
	Use:   "revoke <user_id>",
	Short: "Invalidate the refresh token of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		userID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || userID == 0 {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		refreshTokenRepo, db, err := newRefreshTokenRepositoryForTokenCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		if err = refreshTokenRepo.Revoke(context.Background(), userID, time.Now()); err != nil {
			return err
		}

		fmt.Printf("revoked refresh token for user %d\n", userID)
		return nil
	},
}

func init() {
	tokensPurgeCmd.Flags().StringVar(&purgeBefore, "before", "", "RFC3339 cutoff; tokens expiring before it are deleted")
	tokensCmd.AddCommand(tokensPurgeCmd)
	tokensCmd.AddCommand(tokensRevokeCmd)
	rootCmd.AddCommand(tokensCmd)
}

func parseCutoff(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}

	cutoff, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --before value %q: expected RFC3339", value)
	}
	if cutoff.After(now) {
		return time.Time{}, errors.New("--before must not be in the future")
	}
	return cutoff, nil
}

// Token maintenance only needs the database, so it skips the full config.Load
// and its JWT_SECRET requirement.
func newRefreshTokenRepositoryForTokenCommands() (*repository.RefreshTokenRepository, *sql.DB, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return nil, nil, errors.New("MYSQL_DSN environment variable is required")
	}

	db, err := openDatabase(dsn)
	if err != nil {
		return nil, nil, err
	}

	return repository.NewRefreshTokenRepository(db), db, nil
}
