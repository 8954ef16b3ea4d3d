package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/zephyrprotocol/zephyr-sdk/calltable"
	"github.com/zephyrprotocol/zephyr-sdk/common/bytecodec"
)

// TransactionV1Payload is the signed portion of a unified payload era
// transaction. Its hash is the transaction hash.
type TransactionV1Payload struct {
	InitiatorAddr InitiatorAddr
	Timestamp     Timestamp
	TTL           Duration
	ChainName     string
	PricingMode   PricingMode
	Args          *Args
	Target        Target
	EntryPoint    EntryPoint
	Scheduling    Scheduling
}

// Bytes returns the canonical byte encoding: a calltable whose fields
// are the initiator, timestamp, ttl, chain name, pricing mode and the
// nested execution fields blob, in that order.
func (p *TransactionV1Payload) Bytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, p.InitiatorAddr.CalltableBytes()).
		MustAddField(1, p.Timestamp.Bytes()).
		MustAddField(2, p.TTL.Bytes()).
		MustAddField(3, bytecodec.ToBytesString(p.ChainName)).
		MustAddField(4, p.PricingMode.CalltableBytes()).
		MustAddField(5, p.fieldsBytes())
	return t.ToBytes()
}

// fieldsBytes encodes the nested execution fields blob: a calltable
// holding the args, target, entry point and scheduling.
func (p *TransactionV1Payload) fieldsBytes() []byte {
	var t calltable.Serialization
	t.MustAddField(0, p.Args.Bytes()).
		MustAddField(1, p.Target.CalltableBytes()).
		MustAddField(2, p.EntryPoint.CalltableBytes()).
		MustAddField(3, p.Scheduling.CalltableBytes())
	return t.ToBytes()
}

// PayloadFromBytes decodes a payload from the front of data and returns
// the remainder.
func PayloadFromBytes(data []byte) (*TransactionV1Payload, []byte, error) {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return nil, nil, err
	}
	if t.FieldCount() != 6 {
		return nil, nil, fmt.Errorf("%w: payload has %d fields, want 6", ErrMalformedTransaction, t.FieldCount())
	}

	var p TransactionV1Payload

	initiatorRaw, _ := t.GetField(0)
	if p.InitiatorAddr, err = initiatorAddrFromCalltable(initiatorRaw); err != nil {
		return nil, nil, err
	}

	tsRaw, _ := t.GetField(1)
	ts, tsRest, err := TimestampFromBytes(tsRaw)
	if err != nil || len(tsRest) != 0 {
		return nil, nil, fmt.Errorf("%w: payload timestamp field", ErrMalformedTransaction)
	}
	p.Timestamp = ts

	ttlRaw, _ := t.GetField(2)
	ttl, ttlRest, err := DurationFromBytes(ttlRaw)
	if err != nil || len(ttlRest) != 0 {
		return nil, nil, fmt.Errorf("%w: payload ttl field", ErrMalformedTransaction)
	}
	p.TTL = ttl

	if err = readStringField(t, 3, &p.ChainName); err != nil {
		return nil, nil, err
	}

	pricingRaw, _ := t.GetField(4)
	if p.PricingMode, err = pricingModeFromCalltable(pricingRaw); err != nil {
		return nil, nil, err
	}

	fieldsRaw, _ := t.GetField(5)
	if err = p.parseFields(fieldsRaw); err != nil {
		return nil, nil, err
	}

	return &p, rest, nil
}

// parseFields decodes the nested execution fields blob into the
// payload.
func (p *TransactionV1Payload) parseFields(data []byte) error {
	t, rest, err := calltable.FromBytes(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: trailing bytes after payload fields", ErrMalformedTransaction)
	}
	if t.FieldCount() != 4 {
		return fmt.Errorf("%w: payload fields blob has %d fields, want 4", ErrMalformedTransaction, t.FieldCount())
	}

	argsRaw, _ := t.GetField(0)
	args, argsRest, err := ArgsFromBytes(argsRaw)
	if err != nil || len(argsRest) != 0 {
		if err == nil {
			err = fmt.Errorf("%w: trailing bytes after args", ErrMalformedTransaction)
		}
		return err
	}
	p.Args = args

	targetRaw, _ := t.GetField(1)
	if p.Target, err = targetFromCalltable(targetRaw); err != nil {
		return err
	}

	epRaw, _ := t.GetField(2)
	if p.EntryPoint, err = entryPointFromCalltable(epRaw); err != nil {
		return err
	}

	schedRaw, _ := t.GetField(3)
	if p.Scheduling, err = schedulingFromCalltable(schedRaw); err != nil {
		return err
	}

	return nil
}

// payloadJSON is the JSON wire form of a payload. Execution fields
// nest under "fields" the way they nest in the byte form.
type payloadJSON struct {
	InitiatorAddr json.RawMessage   `json:"initiator_addr"`
	Timestamp     Timestamp         `json:"timestamp"`
	TTL           Duration          `json:"ttl"`
	ChainName     string            `json:"chain_name"`
	PricingMode   json.RawMessage   `json:"pricing_mode"`
	Fields        payloadFieldsJSON `json:"fields"`
}

type payloadFieldsJSON struct {
	Args       json.RawMessage `json:"args"`
	Target     json.RawMessage `json:"target"`
	EntryPoint json.RawMessage `json:"entry_point"`
	Scheduling json.RawMessage `json:"scheduling"`
}

// MarshalJSON encodes the payload for the JSON wire.
func (p *TransactionV1Payload) MarshalJSON() ([]byte, error) {
	initiator, err := json.Marshal(p.InitiatorAddr)
	if err != nil {
		return nil, err
	}
	pricing, err := json.Marshal(p.PricingMode)
	if err != nil {
		return nil, err
	}
	args, err := json.Marshal(p.Args)
	if err != nil {
		return nil, err
	}
	target, err := json.Marshal(p.Target)
	if err != nil {
		return nil, err
	}
	ep, err := json.Marshal(p.EntryPoint)
	if err != nil {
		return nil, err
	}
	sched, err := json.Marshal(p.Scheduling)
	if err != nil {
		return nil, err
	}
	return json.Marshal(payloadJSON{
		InitiatorAddr: initiator,
		Timestamp:     p.Timestamp,
		TTL:           p.TTL,
		ChainName:     p.ChainName,
		PricingMode:   pricing,
		Fields: payloadFieldsJSON{
			Args:       args,
			Target:     target,
			EntryPoint: ep,
			Scheduling: sched,
		},
	})
}

// UnmarshalJSON decodes the payload from the JSON wire.
func (p *TransactionV1Payload) UnmarshalJSON(data []byte) error {
	var raw payloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}

	var err error
	if p.InitiatorAddr, err = InitiatorAddrFromJSON(raw.InitiatorAddr); err != nil {
		return err
	}
	p.Timestamp = raw.Timestamp
	p.TTL = raw.TTL
	p.ChainName = raw.ChainName
	if p.PricingMode, err = PricingModeFromJSON(raw.PricingMode); err != nil {
		return err
	}

	p.Args = NewArgs()
	if raw.Fields.Args != nil {
		if err = json.Unmarshal(raw.Fields.Args, p.Args); err != nil {
			return err
		}
	}
	if p.Target, err = TargetFromJSON(raw.Fields.Target); err != nil {
		return err
	}
	if err = p.EntryPoint.UnmarshalJSON(raw.Fields.EntryPoint); err != nil {
		return err
	}
	if p.Scheduling, err = SchedulingFromJSON(raw.Fields.Scheduling); err != nil {
		return err
	}
	return nil
}
