package records_test

import (
	"encoding/json"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/require"

	tracker "github.com/malusev998/cryptocurrency-tracker"
	"github.com/malusev998/cryptocurrency-tracker/records"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("Indexes by symbol", func(t *testing.T) {
		asserts := require.New(t)

		index, err := records.Index(`[{"symbol":"BTC","price_usd":"50000"},{"symbol":"ETH","price_usd":"3000"}]`)

		asserts.NoError(err)
		asserts.Len(index, 2)
		asserts.Equal(tracker.Record{"symbol": "BTC", "price_usd": "50000"}, index["BTC"])
		asserts.Equal(tracker.Record{"symbol": "ETH", "price_usd": "3000"}, index["ETH"])

		for symbol, record := range index {
			asserts.Equal(symbol, record[tracker.SymbolField])
		}
	})

	t.Run("Null values are replaced", func(t *testing.T) {
		asserts := require.New(t)

		index, err := records.Index(`[{"symbol":"BTC","price_usd":null,"name":"Bitcoin"}]`)

		asserts.NoError(err)
		asserts.Equal(tracker.NotFound, index["BTC"]["price_usd"])
		asserts.Equal("Bitcoin", index["BTC"]["name"])
	})

	t.Run("Last record wins", func(t *testing.T) {
		asserts := require.New(t)

		index, err := records.Index(`[{"symbol":"BTC","rank":"1"},{"symbol":"BTC","rank":"2"}]`)

		asserts.NoError(err)
		asserts.Len(index, 1)
		asserts.Equal("2", index["BTC"]["rank"])
	})

	t.Run("Null symbol is indexed under placeholder", func(t *testing.T) {
		asserts := require.New(t)

		index, err := records.Index(`[{"symbol":null,"name":"Mystery"}]`)

		asserts.NoError(err)
		asserts.Equal("Mystery", index[tracker.NotFound]["name"])
	})

	t.Run("Empty array", func(t *testing.T) {
		asserts := require.New(t)

		index, err := records.Index(`[]`)

		asserts.NoError(err)
		asserts.Empty(index)
	})

	t.Run("Missing symbol fails", func(t *testing.T) {
		asserts := require.New(t)

		index, err := records.Index(`[{"symbol":"BTC"},{"name":"Nameless"}]`)

		asserts.Nil(index)
		asserts.True(tracker.IsKind(err, tracker.ParseError))
		asserts.Equal([]string{"unable to index API response", `record 1 has no "symbol" field`}, tracker.Causes(err))
	})
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	values := []struct {
		body  string
		cause string
	}{
		{``, "invalid JSON"},
		{"[{\"symbol\":\"BT\xffC\"}]", "invalid UTF-8"},
		{`[{"symbol":`, "invalid JSON"},
		{`{"symbol":"BTC"}`, "expected an array, got object"},
		{`"BTC"`, "expected an array, got string"},
		{`[1]`, "record 0: expected an object, got number"},
		{`[{"symbol":"BTC"},[]]`, "record 1: expected an object, got array"},
		{`[{"symbol":"BTC","rank":1}]`, `record 0: field "rank": expected a string or null, got number`},
		{`[{"symbol":"BTC","active":true}]`, `record 0: field "active": expected a string or null, got boolean`},
		{`[{"symbol":"BTC","quote":{}}]`, `record 0: field "quote": expected a string or null, got object`},
	}

	for _, value := range values {
		raws, err := records.Parse(value.body)

		asserts.Nil(raws, value.body)
		asserts.True(tracker.IsKind(err, tracker.ParseError), value.body)
		asserts.Equal([]string{"unable to parse API response", value.cause}, tracker.Causes(err), value.body)
	}
}

func TestNormalize_RandomRecords(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	payload := make([]map[string]*string, 0, 10)
	symbols := make([]string, 0, 10)

	for i := 0; i < 10; i++ {
		symbol := faker.Currency() + faker.Word()
		name := faker.Name()
		symbols = append(symbols, symbol)
		payload = append(payload, map[string]*string{
			"symbol":       &symbol,
			"name":         &name,
			"total_supply": nil,
		})
	}

	body, err := json.Marshal(payload)
	asserts.NoError(err)

	index, err := records.Index(string(body))
	asserts.NoError(err)

	for _, symbol := range symbols {
		record, err := index.Get(symbol)

		asserts.NoError(err)
		asserts.Equal(symbol, record[tracker.SymbolField])
		asserts.Equal(tracker.NotFound, record["total_supply"])
	}
}
