package iso20022

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/accountmodel/pkg/money"
)

const pain001Namespace = "urn:iso:std:iso:20022:tech:xsd:pain.001.001.12"

// CreditTransferInitiation represents a pain.001 message.
type CreditTransferInitiation struct {
	Header       MessageHeader
	Instructions []PaymentInstruction
}

// PaymentInstruction groups the transfers debited from one account.
type PaymentInstruction struct {
	ID            string
	ExecutionDate time.Time
	Debtor        Party
	Transactions  []CreditTransfer
}

// CreditTransfer is a single payment to a creditor.
type CreditTransfer struct {
	EndToEndID     string
	Amount         money.Money
	Creditor       Party
	RemittanceInfo string
}

func (c CreditTransferInitiation) Type() MessageType { return Pain001 }

// ToXML renders the message. Every instruction needs at least one transaction and
// every amount must be positive.
func (c CreditTransferInitiation) ToXML() ([]byte, error) {
	if c.Header.MessageID == "" {
		return nil, errors.New("pain.001: message id is required")
	}

	doc := pain001Document{
		Xmlns: pain001Namespace,
	}

	total := decimal.Zero
	count := 0
	for _, instr := range c.Instructions {
		pmtInf, sum, err := buildPmtInf(instr)
		if err != nil {
			return nil, err
		}
		doc.CstmrCdtTrfInitn.PmtInf = append(doc.CstmrCdtTrfInitn.PmtInf, pmtInf)
		total = total.Add(sum)
		count += len(instr.Transactions)
	}

	doc.CstmrCdtTrfInitn.GrpHdr = pain001GrpHdr{
		MsgID:   c.Header.MessageID,
		CreDtTm: c.Header.CreationDate.UTC().Format(time.RFC3339),
		NbOfTxs: strconv.Itoa(count),
		CtrlSum: total.StringFixed(2),
		InitgPty: pain001Party{
			Nm: c.Header.InitiatingParty,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("pain.001: marshal: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func buildPmtInf(instr PaymentInstruction) (pain001PmtInf, decimal.Decimal, error) {
	if len(instr.Transactions) == 0 {
		return pain001PmtInf{}, decimal.Zero, fmt.Errorf("pain.001: payment instruction %q has no transactions", instr.ID)
	}

	sum := decimal.Zero
	txs := make([]pain001CdtTrfTxInf, 0, len(instr.Transactions))
	for _, tx := range instr.Transactions {
		if !tx.Amount.IsPositive() {
			return pain001PmtInf{}, decimal.Zero, fmt.Errorf("pain.001: transaction %q amount must be positive, got %s", tx.EndToEndID, tx.Amount)
		}
		if !tx.Amount.FitsMinorUnits() {
			return pain001PmtInf{}, decimal.Zero, fmt.Errorf("pain.001: transaction %q amount %s exceeds currency precision", tx.EndToEndID, tx.Amount.Amount())
		}
		sum = sum.Add(tx.Amount.Amount())
		txs = append(txs, pain001CdtTrfTxInf{
			PmtID: pain001PmtID{EndToEndID: tx.EndToEndID},
			Amt: pain001Amt{InstdAmt: pain001InstdAmt{
				Ccy:   tx.Amount.Currency().Code(),
				Value: tx.Amount.Decimal(),
			}},
			CdtrAgt:  agent(tx.Creditor.AgentBIC),
			Cdtr:     party(tx.Creditor),
			CdtrAcct: cashAccount(tx.Creditor.Account),
			RmtInf:   remittance(tx.RemittanceInfo),
		})
	}

	return pain001PmtInf{
		PmtInfID:    instr.ID,
		PmtMtd:      "TRF",
		NbOfTxs:     strconv.Itoa(len(txs)),
		CtrlSum:     sum.StringFixed(2),
		ReqdExctnDt: pain001Date{Dt: instr.ExecutionDate.Format(time.DateOnly)},
		Dbtr:        party(instr.Debtor),
		DbtrAcct:    cashAccount(instr.Debtor.Account),
		DbtrAgt:     agent(instr.Debtor.AgentBIC),
		CdtTrfTxInf: txs,
	}, sum, nil
}

func cashAccount(a AccountIdentification) pain001CashAccount {
	acct := pain001CashAccount{Ccy: a.Currency}
	if a.IBAN != "" {
		acct.ID.IBAN = a.IBAN
		return acct
	}
	acct.ID.Othr = &pain001Other{ID: a.Other}
	if a.Scheme != "" {
		acct.ID.Othr.SchmeNm = &pain001Scheme{Prtry: a.Scheme}
	}
	return acct
}

func party(p Party) pain001Party {
	out := pain001Party{Nm: p.Name}
	if a := p.Address; a != nil {
		out.PstlAdr = &pain001PostalAddress{TwnNm: a.City, Ctry: a.Country}
		if a.AddressLine != "" {
			out.PstlAdr.AdrLine = []string{a.AddressLine}
		}
	}
	if p.PrivateID != "" {
		out.ID = &pain001PartyID{PrvtID: pain001PrivateID{Othr: pain001Other{ID: p.PrivateID}}}
	}
	return out
}

func agent(bic string) *pain001Agent {
	if bic == "" {
		return nil
	}
	return &pain001Agent{FinInstnID: pain001FinInstnID{BICFI: bic}}
}

func remittance(info string) *pain001RmtInf {
	if info == "" {
		return nil
	}
	return &pain001RmtInf{Ustrd: info}
}

// XML marshaling structs (internal)
type pain001Document struct {
	XMLName          xml.Name                `xml:"Document"`
	Xmlns            string                  `xml:"xmlns,attr"`
	CstmrCdtTrfInitn pain001CstmrCdtTrfInitn `xml:"CstmrCdtTrfInitn"`
}

type pain001CstmrCdtTrfInitn struct {
	GrpHdr pain001GrpHdr   `xml:"GrpHdr"`
	PmtInf []pain001PmtInf `xml:"PmtInf"`
}

type pain001GrpHdr struct {
	MsgID    string       `xml:"MsgId"`
	CreDtTm  string       `xml:"CreDtTm"`
	NbOfTxs  string       `xml:"NbOfTxs"`
	CtrlSum  string       `xml:"CtrlSum"`
	InitgPty pain001Party `xml:"InitgPty"`
}

type pain001PmtInf struct {
	PmtInfID    string               `xml:"PmtInfId"`
	PmtMtd      string               `xml:"PmtMtd"`
	NbOfTxs     string               `xml:"NbOfTxs"`
	CtrlSum     string               `xml:"CtrlSum"`
	ReqdExctnDt pain001Date          `xml:"ReqdExctnDt"`
	Dbtr        pain001Party         `xml:"Dbtr"`
	DbtrAcct    pain001CashAccount   `xml:"DbtrAcct"`
	DbtrAgt     *pain001Agent        `xml:"DbtrAgt,omitempty"`
	CdtTrfTxInf []pain001CdtTrfTxInf `xml:"CdtTrfTxInf"`
}

type pain001Date struct {
	Dt string `xml:"Dt"`
}

type pain001Party struct {
	Nm      string                `xml:"Nm,omitempty"`
	PstlAdr *pain001PostalAddress `xml:"PstlAdr,omitempty"`
	ID      *pain001PartyID       `xml:"Id,omitempty"`
}

type pain001PostalAddress struct {
	TwnNm   string   `xml:"TwnNm,omitempty"`
	Ctry    string   `xml:"Ctry,omitempty"`
	AdrLine []string `xml:"AdrLine,omitempty"`
}

type pain001PartyID struct {
	PrvtID pain001PrivateID `xml:"PrvtId"`
}

type pain001PrivateID struct {
	Othr pain001Other `xml:"Othr"`
}

type pain001CashAccount struct {
	ID  pain001AccountID `xml:"Id"`
	Ccy string           `xml:"Ccy,omitempty"`
}

type pain001AccountID struct {
	IBAN string        `xml:"IBAN,omitempty"`
	Othr *pain001Other `xml:"Othr,omitempty"`
}

type pain001Other struct {
	ID      string         `xml:"Id"`
	SchmeNm *pain001Scheme `xml:"SchmeNm,omitempty"`
}

type pain001Scheme struct {
	Prtry string `xml:"Prtry"`
}

type pain001Agent struct {
	FinInstnID pain001FinInstnID `xml:"FinInstnId"`
}

type pain001FinInstnID struct {
	BICFI string `xml:"BICFI"`
}

type pain001CdtTrfTxInf struct {
	PmtID    pain001PmtID       `xml:"PmtId"`
	Amt      pain001Amt         `xml:"Amt"`
	CdtrAgt  *pain001Agent      `xml:"CdtrAgt,omitempty"`
	Cdtr     pain001Party       `xml:"Cdtr"`
	CdtrAcct pain001CashAccount `xml:"CdtrAcct"`
	RmtInf   *pain001RmtInf     `xml:"RmtInf,omitempty"`
}

type pain001PmtID struct {
	EndToEndID string `xml:"EndToEndId"`
}

type pain001Amt struct {
	InstdAmt pain001InstdAmt `xml:"InstdAmt"`
}

type pain001InstdAmt struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type pain001RmtInf struct {
	Ustrd string `xml:"Ustrd"`
}
