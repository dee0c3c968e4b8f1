package pubmed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"pubmedx/types"
)

// esummary response shapes. Only the fields the service reads are mapped;
// NCBI sends many more.
type summaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type summaryEntry struct {
	UID             string     `json:"uid"`
	Title           string     `json:"title"`
	Authors         authorList `json:"authors"`
	FullJournalName string     `json:"fulljournalname"`
	Source          string     `json:"source"`
	PubDate         string     `json:"pubdate"`
	ELocationID     string     `json:"elocationid"`
	Error           string     `json:"error"`
}

// authorList decodes the esummary authors field, which NCBI serves as a
// list of {"name": ...} objects but older mirrors serve as plain strings.
type authorList []string

func (a *authorList) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok && name != "" {
				names = append(names, name)
			}
		}
	}
	*a = authorList(names)
	return nil
}

// parseSummary extracts the article record for pmid from an esummary body.
func parseSummary(pmid string, body []byte) (*types.Article, error) {
	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode esummary response: %w", err)
	}

	raw, ok := resp.Result[pmid]
	if !ok {
		return nil, fmt.Errorf("esummary response has no entry for %s", pmid)
	}

	var entry summaryEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode esummary entry for %s: %w", pmid, err)
	}
	if entry.Error != "" {
		return nil, fmt.Errorf("esummary error for %s: %s", pmid, entry.Error)
	}

	journal := entry.FullJournalName
	if journal == "" {
		journal = entry.Source
	}

	return &types.Article{
		PMID:      pmid,
		Title:     entry.Title,
		Authors:   []string(entry.Authors),
		Journal:   journal,
		PubDate:   entry.PubDate,
		DOI:       entry.ELocationID,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// elink response shapes.
type linkResponse struct {
	LinkSets []linkSet `json:"linksets"`
}

type linkSet struct {
	LinkSetDBs []linkSetDB `json:"linksetdbs"`
}

type linkSetDB struct {
	LinkName string   `json:"linkname"`
	Links    linkList `json:"links"`
}

// linkList decodes an elink links array, whose entries are PMIDs encoded
// either as strings or as numbers depending on the endpoint version.
type linkList []string

func (l *linkList) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make([]string, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			ids = append(ids, v)
		case float64:
			ids = append(ids, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	*l = linkList(ids)
	return nil
}

// parseLinks extracts the PMIDs under linkName from an elink body. An
// absent linkset or linkname means the article simply has no such links.
func parseLinks(linkName string, body []byte) ([]string, error) {
	var resp linkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode elink response: %w", err)
	}

	for _, set := range resp.LinkSets {
		for _, db := range set.LinkSetDBs {
			if db.LinkName == linkName {
				return []string(db.Links), nil
			}
		}
	}
	return nil, nil
}
