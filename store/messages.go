package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type (
	// Message is a single message in a user's feed. From is populated
	// on inbound feeds, To on outbound ones.
	Message struct {
		ID     int64      `json:"id"`
		Body   string     `json:"body"`
		SentAt time.Time  `json:"sent_at"`
		ReadAt *time.Time `json:"read_at"`
		From   *Profile   `json:"from_user,omitempty"`
		To     *Profile   `json:"to_user,omitempty"`
	}
)

// MessagesTo returns every message addressed to username, each carrying
// the sender's profile.
func (s *Store) MessagesTo(ctx context.Context, username string) ([]Message, error) {
	key := "to:" + username
	if msgs, ok := s.feeds.get(key); ok {
		return msgs, nil
	}
	msgs, err := s.queryFeed(ctx,
		`select m.id, m.body, m.sent_at, m.read_at,
			u.username, u.first_name, u.last_name, u.phone
		from messages m
		inner join users u on m.from_username = u.username
		where m.to_username = ?
		order by m.id asc`, username, true)
	if err != nil {
		return nil, err
	}
	s.feeds.put(key, msgs)
	return msgs, nil
}

// MessagesFrom returns every message sent by username, each carrying
// the recipient's profile.
func (s *Store) MessagesFrom(ctx context.Context, username string) ([]Message, error) {
	key := "from:" + username
	if msgs, ok := s.feeds.get(key); ok {
		return msgs, nil
	}
	msgs, err := s.queryFeed(ctx,
		`select m.id, m.body, m.sent_at, m.read_at,
			u.username, u.first_name, u.last_name, u.phone
		from messages m
		inner join users u on m.to_username = u.username
		where m.from_username = ?
		order by m.id asc`, username, false)
	if err != nil {
		return nil, err
	}
	s.feeds.put(key, msgs)
	return msgs, nil
}

// CreateMessage stores a new message between two existing accounts and
// invalidates both parties' cached feeds. Unknown parties surface as
// auth.NotFound.
func (s *Store) CreateMessage(ctx context.Context, from, to, body string) (Message, error) {
	if _, err := s.FindByUsername(ctx, from); err != nil {
		return Message{}, err
	}
	recipient, err := s.FindByUsername(ctx, to)
	if err != nil {
		return Message{}, err
	}
	sentAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`insert into messages (from_username, to_username, body, sent_at) values (?, ?, ?, ?)`,
		from, to, body, sentAt)
	if err != nil {
		return Message{}, fmt.Errorf("unable to store message from %v to %v, cause %w", from, to, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, fmt.Errorf("unable to store message from %v to %v, cause %w", from, to, err)
	}
	s.feeds.drop("to:"+to, "from:"+from)
	return Message{
		ID:     id,
		Body:   body,
		SentAt: sentAt,
		To: &Profile{
			Username:  recipient.Username,
			FirstName: recipient.FirstName,
			LastName:  recipient.LastName,
			Phone:     recipient.Phone,
		},
	}, nil
}

func (s *Store) queryFeed(ctx context.Context, query, username string, inbound bool) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("unable to load messages of %v, cause %w", username, err)
	}
	defer rows.Close()
	out := []Message{}
	for rows.Next() {
		var m Message
		var p Profile
		var readAt sql.NullTime
		err = rows.Scan(&m.ID, &m.Body, &m.SentAt, &readAt,
			&p.Username, &p.FirstName, &p.LastName, &p.Phone)
		if err != nil {
			return nil, fmt.Errorf("unable to scan message row, cause %v", err)
		}
		if readAt.Valid {
			t := readAt.Time
			m.ReadAt = &t
		}
		if inbound {
			m.From = &p
		} else {
			m.To = &p
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
