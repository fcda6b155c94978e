// Package ofx imports transactions from OFX/QFX files. OFX data carries its
// own dates and signed amounts, so it bypasses the regex engine entirely and
// flows straight into categorization and export.
package ofx

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/ledger-sieve/internal/categorize"
	"github.com/Veraticus/ledger-sieve/internal/model"
)

// Parser parses OFX/QFX files into transactions.
type Parser struct {
	categorizer *categorize.Categorizer
}

// NewParser creates an OFX parser that categorizes with the given categorizer.
func NewParser(categorizer *categorize.Categorizer) *Parser {
	return &Parser{categorizer: categorizer}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRegex  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in bank-exported OFX files:
// leading whitespace, mixed-case SEVERITY values, and SGML-style tags
// missing their closing angle bracket.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRegex.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX stream and returns categorized transactions.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	institution := strings.TrimSpace(string(resp.Signon.Org))
	if institution == "" {
		institution = "OFX"
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTxn := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTxn, institution))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTxn := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTxn, institution))
			}
		}
	}

	return transactions, nil
}

// convert maps an OFX transaction onto the statement model. OFX amounts are
// negative for debits; statements report debits positive and credits
// negative, so the sign flips.
func (p *Parser) convert(ofxTxn ofxgo.Transaction, institution string) model.Transaction {
	amount, _ := ofxTxn.TrnAmt.Float64()

	description := strings.TrimSpace(string(ofxTxn.Name))
	if ofxTxn.Payee != nil && ofxTxn.Payee.Name != "" {
		description = strings.TrimSpace(string(ofxTxn.Payee.Name))
	}
	if memo := strings.TrimSpace(string(ofxTxn.Memo)); memo != "" && description == "" {
		description = memo
	}

	return model.Transaction{
		Institution: institution,
		Date:        ofxTxn.DtPosted.Time,
		Amount:      -amount,
		Description: description,
		Category:    p.categorizer.Categorize(description),
	}
}
