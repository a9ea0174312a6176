package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseMarkup parses fetched bytes once into a navigable document shared by
// every strategy in the chain.
func parseMarkup(body []byte) (*goquery.Document, error) {
	node, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(node), nil
}
