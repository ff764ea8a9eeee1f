package solana

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const tokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// Client talks JSON-RPC to a Solana node. It implements the chain
// collaborator: transaction confirmation, sender extraction, holder checks
// and treasury transfers. It never interprets program state beyond that.
type Client struct {
	rpcURL     string
	treasury   *Keypair
	httpClient *http.Client

	confirmTimeout  time.Duration
	confirmInterval time.Duration
}

// NewClient creates a chain client. The treasury keypair may be nil for
// read-only deployments; Transfer then fails.
func NewClient(rpcURL string, treasury *Keypair) *Client {
	return &Client{
		rpcURL:          rpcURL,
		treasury:        treasury,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		confirmTimeout:  60 * time.Second,
		confirmInterval: 2 * time.Second,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC round trip and unmarshals the result.
func (c *Client) call(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc %s error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("failed to unmarshal %s result: %w", method, err)
		}
	}

	return nil
}

// ConfirmTransaction polls signature status until the transaction reaches
// confirmed or finalized commitment, or the poll deadline expires. A
// timeout is ambiguous: the transaction may still land, so callers must
// re-check state before retrying.
func (c *Client) ConfirmTransaction(ctx context.Context, signature string) error {
	deadline := time.Now().Add(c.confirmTimeout)

	for {
		var status struct {
			Value []*struct {
				ConfirmationStatus string `json:"confirmationStatus"`
				Err                any    `json:"err"`
			} `json:"value"`
		}

		err := c.call(ctx, "getSignatureStatuses",
			[]any{[]string{signature}, map[string]any{"searchTransactionHistory": true}}, &status)
		if err != nil {
			return err
		}

		if len(status.Value) > 0 && status.Value[0] != nil {
			s := status.Value[0]
			if s.Err != nil {
				return fmt.Errorf("transaction %s failed on chain", signature)
			}
			if s.ConfirmationStatus == "confirmed" || s.ConfirmationStatus == "finalized" {
				return nil
			}
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for confirmation of %s", signature)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.confirmInterval):
		}
	}
}

// TransactionSender returns the fee payer (first account key) of a
// confirmed transaction.
func (c *Client) TransactionSender(ctx context.Context, signature string) (string, error) {
	var result *struct {
		Transaction struct {
			Message struct {
				AccountKeys []struct {
					Pubkey string `json:"pubkey"`
				} `json:"accountKeys"`
			} `json:"message"`
		} `json:"transaction"`
	}

	err := c.call(ctx, "getTransaction",
		[]any{signature, map[string]any{"encoding": "jsonParsed", "maxSupportedTransactionVersion": 0}}, &result)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Transaction.Message.AccountKeys) == 0 {
		return "", fmt.Errorf("transaction %s not found", signature)
	}

	return result.Transaction.Message.AccountKeys[0].Pubkey, nil
}

// NFTMints returns the mint addresses of the wallet's whole, zero-decimal
// tokens (its NFTs). Whether any of them belong to the collection is the
// mint registry's call, not the chain's.
func (c *Client) NFTMints(ctx context.Context, wallet string) ([]string, error) {
	var result struct {
		Value []struct {
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							Mint        string `json:"mint"`
							TokenAmount struct {
								UIAmount *float64 `json:"uiAmount"`
								Decimals int      `json:"decimals"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}

	err := c.call(ctx, "getTokenAccountsByOwner",
		[]any{wallet, map[string]any{"programId": tokenProgramID}, map[string]any{"encoding": "jsonParsed"}},
		&result)
	if err != nil {
		return nil, err
	}

	var mints []string
	for _, account := range result.Value {
		info := account.Account.Data.Parsed.Info
		if info.TokenAmount.UIAmount != nil && *info.TokenAmount.UIAmount == 1 && info.TokenAmount.Decimals == 0 {
			mints = append(mints, info.Mint)
		}
	}

	return mints, nil
}

// Transfer sends lamports from the treasury to a wallet and waits for
// confirmation.
func (c *Client) Transfer(ctx context.Context, toWallet string, lamports int64) (string, error) {
	if c.treasury == nil {
		return "", fmt.Errorf("no treasury keypair configured")
	}

	var blockhash struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getLatestBlockhash", []any{map[string]any{"commitment": "confirmed"}}, &blockhash); err != nil {
		return "", err
	}

	tx := buildTransferTransaction(c.treasury, toWallet, lamports, blockhash.Value.Blockhash)

	var signature string
	err := c.call(ctx, "sendTransaction",
		[]any{base64.StdEncoding.EncodeToString(tx), map[string]any{"encoding": "base64"}}, &signature)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"signature": signature,
		"to":        toWallet,
		"lamports":  lamports,
	}).Info("Treasury transfer submitted")

	if err := c.ConfirmTransaction(ctx, signature); err != nil {
		return signature, err
	}

	return signature, nil
}
