package transaction

import (
	"io"

	"github.com/zephyrprotocol/zephyr-sdk/common/prettyprint"
)

var (
	_ prettyprint.PrettyPrinter = (*Deploy)(nil)
	_ prettyprint.PrettyPrinter = (*TransactionV1)(nil)
)

// PrettyPrint writes a pretty-printed representation of the deploy to
// the given writer.
func (d *Deploy) PrettyPrint(prefix string, w io.Writer) {
	prettyprint.Field(prefix, w, "Hash", d.Hash)
	prettyprint.Field(prefix, w, "Chain name", d.Header.ChainName)
	prettyprint.Field(prefix, w, "Account", d.Header.Account)
	prettyprint.Field(prefix, w, "Timestamp", d.Header.Timestamp)
	prettyprint.Field(prefix, w, "TTL", d.Header.TTL)
	prettyprint.Field(prefix, w, "Approvals", len(d.Approvals))
	prettyprint.JSON(prefix, w, d)
}

// PrettyPrint writes a pretty-printed representation of the
// transaction to the given writer.
func (t *TransactionV1) PrettyPrint(prefix string, w io.Writer) {
	prettyprint.Field(prefix, w, "Hash", t.Hash)
	prettyprint.Field(prefix, w, "Chain name", t.Payload.ChainName)
	prettyprint.Field(prefix, w, "Entry point", t.Payload.EntryPoint)
	prettyprint.Field(prefix, w, "Timestamp", t.Payload.Timestamp)
	prettyprint.Field(prefix, w, "TTL", t.Payload.TTL)
	prettyprint.Field(prefix, w, "Approvals", len(t.Approvals))
	prettyprint.JSON(prefix, w, t)
}
