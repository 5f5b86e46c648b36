package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var (
	week       int
	season     int
	seasonType int
	mine       bool
)

func init() {
	gamesCmd.Flags().IntVar(&week, "week", 0, "Week number (required)")
	gamesCmd.Flags().IntVar(&season, "season", 0, "Season year (defaults to the server's)")
	gamesCmd.Flags().IntVar(&seasonType, "season-type", 0, "1 preseason, 2 regular, 3 postseason")
	_ = gamesCmd.MarkFlagRequired("week")

	leaderboardCmd.Flags().IntVar(&week, "week", 0, "Week number (required)")
	_ = leaderboardCmd.MarkFlagRequired("week")

	seasonCmd.Flags().BoolVar(&mine, "me", false, "Show your own season record instead of the leaderboard")

	reconcileCmd.Flags().IntVar(&week, "week", 0, "Week number (required)")
	reconcileCmd.Flags().BoolVar(&mine, "me", false, "Reconcile only your own submission")
	_ = reconcileCmd.MarkFlagRequired("week")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(leaguesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(winnersCmd)
	rootCmd.AddCommand(reconcileCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/healthz", nil)
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games of a week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("week", strconv.Itoa(week))
		if season > 0 {
			query.Set("season", strconv.Itoa(season))
		}
		if seasonType > 0 {
			query.Set("season_type", strconv.Itoa(seasonType))
		}
		return performRequest(cmd, http.MethodGet, "/v1/games?"+query.Encode(), nil)
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List the leagues you belong to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, "/v1/leagues/me", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <league-id>",
	Short: "Show the weekly leaderboard of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, leaguePath(args[0], "weeks", strconv.Itoa(week), "leaderboard"), nil)
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season <league-id>",
	Short: "Show the season leaderboard of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mine {
			return performRequest(cmd, http.MethodGet, leaguePath(args[0], "season", "me"), nil)
		}
		return performRequest(cmd, http.MethodGet, leaguePath(args[0], "season", "leaderboard"), nil)
	},
}

var winnersCmd = &cobra.Command{
	Use:   "winners <league-id>",
	Short: "Show the current season winners of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd, http.MethodGet, leaguePath(args[0], "season", "winners"), nil)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <league-id>",
	Short: "Rescore a league week against the latest game results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mine {
			return performRequest(cmd, http.MethodPost, leaguePath(args[0], "weeks", strconv.Itoa(week), "submission", "reconcile"), nil)
		}
		return performRequest(cmd, http.MethodPost, leaguePath(args[0], "weeks", strconv.Itoa(week), "reconcile"), nil)
	},
}

func leaguePath(leagueID string, parts ...string) string {
	segments := append([]string{"/v1/leagues", url.PathEscape(strings.TrimSpace(leagueID))}, parts...)
	return strings.Join(segments, "/")
}

func performRequest(cmd *cobra.Command, method, endpoint string, body []byte) error {
	if week < 0 {
		return fmt.Errorf("week must be >= 0")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	target := strings.TrimRight(host, "/") + endpoint
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Making request to %s %s\n", method, target)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if t := strings.TrimSpace(token); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, prettyJSON(raw))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func prettyJSON(raw []byte) string {
	var v any
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	indented, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(indented)
}
