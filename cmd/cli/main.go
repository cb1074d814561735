package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kasir-cli",
		Short: "Kasir CLI tool",
		Long:  `A command line interface for interacting with the Kasir cash register API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Kasir API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(daysCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(previewCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active register session",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/register/status")
		},
	}
}

func daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List persisted session dates",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/v1/register/days")
		},
	}
}

func reportCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate transactions over a date range",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint(fmt.Sprintf("/api/v1/reports?from=%s&to=%s", from, to))
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <amount>",
		Short: "Preview a change breakdown for an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}

			body, _ := json.Marshal(map[string]int64{"amount": amount})
			postAndPrint("/api/v1/register/change-preview", body)
			return nil
		},
	}
}

func getAndPrint(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func postAndPrint(path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func printResponse(resp *http.Response) {
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
