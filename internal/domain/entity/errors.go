package entity

import "strings"

// ScopeBase attributes an error to the record as a whole rather than a field.
const ScopeBase = "base"

// ErrorKind identifies a validation failure independently of its message.
type ErrorKind string

const (
	InvalidBankCode      ErrorKind = "invalid_bank_code"
	InvalidAccountNumber ErrorKind = "invalid_account_number"
)

var messages = map[ErrorKind]string{
	InvalidBankCode:      "The bank code is invalid.",
	InvalidAccountNumber: "The account number is invalid.",
}

func (k ErrorKind) Message() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return string(k)
}

type RecordError struct {
	Scope   string    `json:"scope"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Errors accumulates validation failures. The zero value is ready to use.
type Errors struct {
	items []RecordError
}

func (e *Errors) Add(scope string, kind ErrorKind) {
	e.items = append(e.items, RecordError{Scope: scope, Kind: kind, Message: kind.Message()})
}

func (e *Errors) Clear()      { e.items = nil }
func (e *Errors) Empty() bool { return len(e.items) == 0 }
func (e *Errors) Len() int    { return len(e.items) }

// Items returns a copy of the accumulated errors in insertion order.
func (e *Errors) Items() []RecordError {
	out := make([]RecordError, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Errors) Has(kind ErrorKind) bool {
	for _, it := range e.items {
		if it.Kind == kind {
			return true
		}
	}
	return false
}

// Full returns the messages grouped by scope, e.g. {"base": ["The bank code is invalid."]}.
func (e *Errors) Full() map[string][]string {
	out := make(map[string][]string, len(e.items))
	for _, it := range e.items {
		out[it.Scope] = append(out[it.Scope], it.Message)
	}
	return out
}

func (e *Errors) Error() string {
	msgs := make([]string, 0, len(e.items))
	for _, it := range e.items {
		msgs = append(msgs, it.Message)
	}
	return strings.Join(msgs, " ")
}
