package operation

// Type represents the type of storage operation.
type Type int

const (
	// TypeGet represents a read over a key range.
	TypeGet Type = iota
	// TypePut represents a write operation.
	TypePut
	// TypeDelete represents a delete over a key range.
	TypeDelete
	// TypeTxn represents a nested conditional transaction.
	TypeTxn
)

func (t Type) String() string {
	switch t {
	case TypeGet:
		return "Get"
	case TypePut:
		return "Put"
	case TypeDelete:
		return "Delete"
	case TypeTxn:
		return "Txn"
	default:
		return "Unknown"
	}
}
