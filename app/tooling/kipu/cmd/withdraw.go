package cmd

import (
	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw funds from your account",
	Run:   withdrawRun,
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
	withdrawCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the bank service.")
	withdrawCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Amount to withdraw.")
}

func withdrawRun(cmd *cobra.Command, args []string) {
	postFunds("withdraw")
}
