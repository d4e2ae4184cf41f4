package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/feliperdao/kipubank/foundation/ledger"
	"github.com/spf13/cobra"
)

var (
	url    string
	amount uint64
)

// fundsTx matches the payload the bank service expects for fund movements.
type fundsTx struct {
	AccountID string `json:"account_id"`
	Amount    uint64 `json:"amount"`
}

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Deposit funds into your account",
	Run:   depositRun,
}

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the bank service.")
	depositCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Amount to deposit.")
}

func depositRun(cmd *cobra.Command, args []string) {
	postFunds("deposit")
}

// postFunds loads the caller's key, derives the account id, and submits the
// specified fund movement to the bank service.
func postFunds(op string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	tx := fundsTx{
		AccountID: string(ledger.PublicKeyToAccountID(privateKey.PublicKey)),
		Amount:    amount,
	}

	data, err := json.Marshal(tx)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/funds/%s", url, op), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(body))
}
