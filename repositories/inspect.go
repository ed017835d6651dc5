package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Row is a human readable view of one stored record.
type Row struct {
	Key     string
	Kind    string
	At      string
	Summary string
}

// Inspect walks every key under prefix and decodes the records it knows.
// Index keys (pair:, uconv:, userid:) are listed with their raw value.
// Password hashes are never printed.
func Inspect(db *badger.DB, prefix string) ([]Row, error) {
	var rows []Row
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			key := string(item.Key())
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			rows = append(rows, describe(key, value))
		}
		return nil
	})
	return rows, err
}

func describe(key string, value []byte) Row {
	row := Row{Key: key}
	var err error
	switch {
	case strings.HasPrefix(key, conversationPrefix):
		row.Kind = "CONVERSATION"
		c, decodeErr := decodeConversation(value)
		err = decodeErr
		row.At = c.CreatedAt.Format(time.DateTime)
		row.Summary = fmt.Sprintf("%s <-> %s", c.ParticipantA, c.ParticipantB)
	case strings.HasPrefix(key, messagePrefix):
		row.Kind = "MESSAGE"
		m, decodeErr := decodeMessage(value)
		err = decodeErr
		row.At = m.CreatedAt.Format(time.DateTime)
		row.Summary = fmt.Sprintf("%s -> %s: %s", m.SenderID, m.RecipientID, m.Content)
	case strings.HasPrefix(key, userPrefix):
		row.Kind = "USER"
		u, decodeErr := decodeUser(value)
		err = decodeErr
		row.At = u.CreatedAt.Format(time.DateTime)
		row.Summary = fmt.Sprintf("%s (%s)", u.Username, u.ID)
	case strings.HasPrefix(key, messageSequenceKey):
		row.Kind = "SEQUENCE"
	default:
		row.Kind = "INDEX"
		row.Summary = string(value)
	}
	if err != nil {
		row.Summary = fmt.Sprintf("undecodable record: %v", err)
	}
	return row
}
