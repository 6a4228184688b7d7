package bondladder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

/*
	A vendor quote feed is a loosely structured JSON document of the form:

	{
	    "meta": {
	        "source": "treasury-eod",
	        "asof": "2024-05-03"
	    },
	    "quotes": [
	        {"symbol": "T-4.5-2031", "session": "2024-05-03", "close": 101.22},
	        {"symbol": "T-4.0-2033", "session": "2024-05-03", "close": 98.70}
	    ]
	}
*/

// ImportQuoteFeed mines price observations out of a vendor quote feed
// document and records them into the market data. Quotes for instruments
// not declared in the market data are skipped: vendor feeds routinely carry
// more symbols than the simulation universe.
func ImportQuoteFeed(r io.Reader, m *MarketData) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("could not read quote feed: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return 0, fmt.Errorf("could not parse quote feed: %w", err)
	}

	const path = "$.quotes[*]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing quote feed: %q %w", path, err)
	}
	jquotes, ok := jval.([]any)
	if !ok {
		return 0, fmt.Errorf("error parsing quote feed: %q is not a list", path)
	}

	imported := 0
	for i, jq := range jquotes {
		symbol, err := feedString(jq, "$.symbol")
		if err != nil {
			return imported, fmt.Errorf("quote %d: %w", i, err)
		}
		if _, declared := m.Instrument(symbol); !declared {
			continue
		}
		session, err := feedString(jq, "$.session")
		if err != nil {
			return imported, fmt.Errorf("quote %d (%s): %w", i, symbol, err)
		}
		on, err := ParseDate(session)
		if err != nil {
			return imported, fmt.Errorf("quote %d (%s): %w", i, symbol, err)
		}
		close, err := feedFloat(jq, "$.close")
		if err != nil {
			return imported, fmt.Errorf("quote %d (%s): %w", i, symbol, err)
		}
		if err := m.AddPrice(symbol, on, close); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func feedString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string: %v", path, jval)
	}
	return s, nil
}

func feedFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	v, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float: %v", path, jval)
	}
	return v, nil
}
