package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/Shooukoo/yesmos.com/config"
	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// The only two user-facing validation errors in the whole tool
var (
	ErrEmptyCart    = errors.New("el ticket está vacío")
	ErrMissingPhone = errors.New("agrega un teléfono del cliente")
)

// spanishMonths for the printed date, es-MX style
var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// TicketService turns the current quote into its two export shapes: a
// WhatsApp message/deep link and a printable document
type TicketService struct {
	quote *QuoteService
	cfg   *config.Config
}

// NewTicketService creates a new TicketService
func NewTicketService(quote *QuoteService, cfg *config.Config) *TicketService {
	return &TicketService{quote: quote, cfg: cfg}
}

// BuildMessage renders the ticket as the WhatsApp text block. Rejects an
// empty cart; the phone is validated separately by WhatsAppLink because the
// raw message itself doesn't need one.
func (t *TicketService) BuildMessage() (string, error) {
	state := t.quote.State()
	totals := t.quote.Totals()

	if len(state.Cart) == 0 {
		return "", ErrEmptyCart
	}

	company := state.CompanyData
	var b strings.Builder

	if state.ClientName != "" {
		fmt.Fprintf(&b, "Hola %s!\n\n", state.ClientName)
	} else {
		b.WriteString("Hola!\n\n")
	}

	if company.Name != "" {
		fmt.Fprintf(&b, "Tu cotizacion de *%s*:\n\n", company.Name)
	} else {
		b.WriteString("Tu cotizacion:\n\n")
	}

	for _, item := range state.Cart {
		fmt.Fprintf(&b, "- %s: $%s\n", item.Name, utils.FormatAmount(item.SellingPrice))
	}

	if totals.Labor > 0 {
		fmt.Fprintf(&b, "\nMano de obra: $%s\n", utils.FormatAmount(totals.Labor))
	}

	b.WriteString("\n--------------------\n")
	fmt.Fprintf(&b, "*TOTAL: $%s*\n", utils.FormatAmount(totals.Total))

	if company.Name != "" || company.Address != "" || company.Phone != "" {
		b.WriteString("\n")
		if company.Name != "" || company.Address != "" {
			parts := make([]string, 0, 2)
			if company.Name != "" {
				parts = append(parts, company.Name)
			}
			if company.Address != "" {
				parts = append(parts, company.Address)
			}
			b.WriteString(strings.Join(parts, " - ") + "\n")
		}
		if company.Phone != "" {
			b.WriteString("Tel: " + company.Phone)
		}
	}

	fmt.Fprintf(&b, "\n\nEsta cotización puede tener cambios, por favor contacte al taller de reparación %s", company.Name)

	return b.String(), nil
}

// WhatsAppLink builds the wa.me deep link carrying the encoded message.
// Requires a client phone; this is the one place the tool says no.
func (t *TicketService) WhatsAppLink() (string, string, error) {
	state := t.quote.State()
	if state.ClientPhone == "" {
		return "", "", ErrMissingPhone
	}

	message, err := t.BuildMessage()
	if err != nil {
		return "", "", err
	}

	phone := utils.NormalizePhone(state.ClientPhone)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", phone, encodeURIComponent(message))
	return link, message, nil
}

// encodeURIComponent percent-encodes the way browsers do for query fragments:
// spaces become %20, never "+"
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ticketTemplateData is the payload handed to templates/ticket.html. Currency
// comes pre-formatted with two decimals; the printable path always shows
// cents, unlike the message path.
type ticketTemplateData struct {
	Company    models.CompanyData
	Logo       template.URL // bypasses URL filtering so data: logos render
	ClientName string
	Phone      string
	Date       string
	Time       string
	Items      []ticketTemplateItem
	Subtotal   string
	Labor      string
	ShowLabor  bool
	Total      string
}

type ticketTemplateItem struct {
	Name     string
	Category string
	Price    string
}

// RenderHTML renders the printable ticket. The date/time is stamped at render
// time, not at cart-build time.
func (t *TicketService) RenderHTML() (string, error) {
	state := t.quote.State()
	totals := t.quote.Totals()

	if len(state.Cart) == 0 {
		return "", ErrEmptyCart
	}

	clientName := state.ClientName
	if clientName == "" {
		clientName = "Mostrador"
	}

	now := time.Now()
	items := make([]ticketTemplateItem, 0, len(state.Cart))
	for _, item := range state.Cart {
		items = append(items, ticketTemplateItem{
			Name:     item.Name,
			Category: item.Category,
			Price:    utils.FormatAmount2(item.SellingPrice),
		})
	}

	data := ticketTemplateData{
		Company:    state.CompanyData,
		Logo:       template.URL(state.CompanyData.Logo),
		ClientName: clientName,
		Phone:      state.ClientPhone,
		Date:       fmt.Sprintf("%02d de %s de %d", now.Day(), spanishMonths[now.Month()-1], now.Year()),
		Time:       now.Format("15:04"),
		Items:      items,
		Subtotal:   utils.FormatAmount2(totals.Subtotal),
		Labor:      utils.FormatAmount2(totals.Labor),
		ShowLabor:  totals.Labor > 0,
		Total:      utils.FormatAmount2(totals.Total),
	}

	templatePath := filepath.Join("templates", "ticket.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse ticket template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute ticket template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the rendered ticket to PDF using chromedp. The browser
// navigates to our own render endpoint so the printed document and the HTML
// preview can never drift apart.
func (t *TicketService) GeneratePDF(ctx context.Context) ([]byte, error) {
	state := t.quote.State()
	if len(state.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/api/cotizador/ticket/render", t.cfg.BaseURL)
	log.Printf("🖨️  GeneratePDF: rendering %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(500*time.Millisecond), // let the optional logo image load
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
