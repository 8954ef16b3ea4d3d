// vectors generates deterministic signed transaction test vectors and
// dumps them as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/zephyrprotocol/zephyr-sdk/clvalue"
	"github.com/zephyrprotocol/zephyr-sdk/common/crypto/hash"
	"github.com/zephyrprotocol/zephyr-sdk/common/logging"
	"github.com/zephyrprotocol/zephyr-sdk/common/prettyprint"
	"github.com/zephyrprotocol/zephyr-sdk/common/quantity"
	"github.com/zephyrprotocol/zephyr-sdk/transaction"
	"github.com/zephyrprotocol/zephyr-sdk/transaction/testvectors"
)

const (
	cfgChainName = "chain-name"
	cfgOutput    = "output"
	cfgPretty    = "pretty"
	cfgLogLevel  = "log.level"
	cfgLogFormat = "log.format"
)

var (
	flags = flag.NewFlagSet("", flag.ContinueOnError)

	logLevel  = logging.LevelInfo
	logFormat = logging.FmtLogfmt

	logger = logging.GetLogger("cmd/vectors")

	rootCmd = &cobra.Command{
		Use:   "vectors",
		Short: "Generate signed transaction test vectors",
		RunE:  runRoot,
	}
)

// vectorTimestamp keeps the generated vectors byte-stable across runs.
var vectorTimestamp = transaction.NewTimestamp(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

func generateVectors(chainName string) []testvectors.TestVector {
	var vectors []testvectors.TestVector

	// Deploy era native transfers over a range of amounts.
	for _, amount := range []uint64{1, 2_500_000_000, 25_000_000_000} {
		recipient := testvectors.VectorSigner("Transfer recipient")
		header := &transaction.DeployHeader{
			Account:   testvectors.VectorSigner("Transfer").Public(),
			Timestamp: vectorTimestamp,
			TTL:       transaction.NewDuration(30 * time.Minute),
			GasPrice:  1,
			ChainName: chainName,
		}
		d := transaction.NewDeploy(
			header,
			transaction.NewStandardPayment(quantity.NewFromUint64(100_000_000)),
			transaction.NewTransferSession(quantity.NewFromUint64(amount), recipient.Public(), nil),
		)
		vectors = append(vectors, testvectors.MakeDeployVector("Transfer", d, true))
	}

	// Unified payload era transfers over the pricing modes.
	for _, pricing := range []transaction.PricingMode{
		transaction.Fixed{GasPriceTolerance: 1},
		transaction.PaymentLimited{PaymentAmount: 100_000_000, GasPriceTolerance: 2, StandardPayment: true},
		transaction.Prepaid{Receipt: hash.NewFromBytes([]byte("vector reservation"))},
	} {
		signer := testvectors.VectorSigner("TransactionV1")
		recipient := testvectors.VectorSigner("TransactionV1 recipient")
		args := transaction.NewArgs().
			MustInsert("amount", clvalue.NewU512FromUint64(25_000_000_000)).
			MustInsert("target", clvalue.NewPublicKey(recipient.Public()))
		payload := &transaction.TransactionV1Payload{
			InitiatorAddr: transaction.InitiatorPublicKey{PublicKey: signer.Public()},
			Timestamp:     vectorTimestamp,
			TTL:           transaction.NewDuration(30 * time.Minute),
			ChainName:     chainName,
			PricingMode:   pricing,
			Args:          args,
			Target:        transaction.Native{},
			EntryPoint:    transaction.EntryPointTransfer,
			Scheduling:    transaction.Standard{},
		}
		vectors = append(vectors, testvectors.MakeTransactionV1Vector("TransactionV1", transaction.NewTransactionV1(payload), true))
	}

	// A stored contract call exercising the custom entry point path.
	signer := testvectors.VectorSigner("StoredCall")
	payload := &transaction.TransactionV1Payload{
		InitiatorAddr: transaction.InitiatorAccountHash{Hash: signer.Public().AccountHash()},
		Timestamp:     vectorTimestamp,
		TTL:           transaction.NewDuration(1 * time.Hour),
		ChainName:     chainName,
		PricingMode:   transaction.Fixed{GasPriceTolerance: 1},
		Args:          transaction.NewArgs().MustInsert("value", clvalue.U32(7)),
		Target:        transaction.Stored{ID: transaction.ByName{Name: "counter"}, Runtime: transaction.RuntimeVmV1},
		EntryPoint:    transaction.NewCustomEntryPoint("increment"),
		Scheduling:    transaction.FutureEra{Era: 100},
	}
	vectors = append(vectors, testvectors.MakeTransactionV1Vector("StoredCall", transaction.NewTransactionV1(payload), true))

	return vectors
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(os.Stderr, logFormat, logLevel, nil); err != nil {
		return fmt.Errorf("vectors: failed to initialize logging: %w", err)
	}

	chainName, _ := cmd.Flags().GetString(cfgChainName)
	output, _ := cmd.Flags().GetString(cfgOutput)
	pretty, _ := cmd.Flags().GetBool(cfgPretty)

	vectors := generateVectors(chainName)
	logger.Info("generated test vectors",
		"count", len(vectors),
		"chain_name", chainName,
	)

	if pretty {
		for _, v := range vectors {
			fmt.Fprintf(os.Stdout, "=== %s ===\n", v.Kind)
			if pp, ok := v.Tx.(prettyprint.PrettyPrinter); ok {
				pp.PrettyPrint("  ", os.Stdout)
			}
		}
		return nil
	}

	raw, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		return fmt.Errorf("vectors: failed to marshal vectors: %w", err)
	}

	if output == "" {
		fmt.Fprintln(os.Stdout, string(raw))
		return nil
	}
	if err = os.WriteFile(output, raw, 0o600); err != nil {
		return fmt.Errorf("vectors: failed to write %s: %w", output, err)
	}
	logger.Info("wrote test vectors", "output", output)
	return nil
}

func init() {
	flags.String(cfgChainName, "zephyr-test", "chain name to embed in the vectors")
	flags.String(cfgOutput, "", "output file (default: stdout)")
	flags.Bool(cfgPretty, false, "pretty print instead of emitting JSON")
	flags.Var(&logLevel, cfgLogLevel, "log level")
	flags.Var(&logFormat, cfgLogFormat, "log format")
	rootCmd.Flags().AddFlagSet(flags)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
