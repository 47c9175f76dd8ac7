package prices

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Memo remembers answers (and misses) of another oracle per coin and day.
type Memo struct {
	oracle Oracle
	seen   *gocache.Cache
}

type memoEntry struct {
	price decimal.Decimal
	err   error
}

func NewMemo(oracle Oracle) *Memo {
	return &Memo{oracle: oracle, seen: gocache.New(gocache.NoExpiration, 0)}
}

func (m *Memo) Price(coin string, date time.Time) (decimal.Decimal, error) {
	key := coin + "@" + dayKey(date)

	if v, ok := m.seen.Get(key); ok {
		entry := v.(memoEntry)
		return entry.price, entry.err
	}

	price, err := m.oracle.Price(coin, date)
	m.seen.SetDefault(key, memoEntry{price: price, err: err})

	return price, err
}
