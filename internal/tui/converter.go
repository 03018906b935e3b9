package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/service"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	MsgStale         = "Using offline rates due to connection issue"
	MsgNoData        = "No exchange rates data available. Please connect to the internet."
	MsgInvalidAmount = "Please enter a valid amount"
)

const (
	actionConvert = "convert"
	actionSwap    = "swap"
	actionQuit    = "quit"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#D7A500", Dark: "#F2C94C"}
	danger    = lipgloss.AdaptiveColor{Light: "#D0312D", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	resultStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	warnStyle  = lipgloss.NewStyle().Foreground(warning)
	errorStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(subtle)
)

// StatusMessage текст для пользователя по статусу кэша. Пустая строка, если сообщать нечего.
func StatusMessage(status models.CacheStatus) string {
	switch status {
	case models.StatusStale:
		return MsgStale
	case models.StatusMissing, models.StatusFetchFailed:
		return MsgNoData
	default:
		return ""
	}
}

// ParseAmount принимает только конечные положительные числа.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, custom_err.ErrInvalidAmount
	}
	return amount, nil
}

// FormatResult строка вида "100 USD = 92.00 EUR".
func FormatResult(conv *models.Conversion) string {
	return fmt.Sprintf("%s %s = %s %s",
		strconv.FormatFloat(conv.Amount, 'f', -1, 64), conv.From, conv.Rounded, conv.To)
}

func currencyOptions(currencies []models.Currency) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(currencies))
	for _, c := range currencies {
		label := c.Code
		if c.Name != c.Code {
			label = fmt.Sprintf("%s - %s", c.Code, c.Name)
		}
		options = append(options, huh.NewOption(label, c.Code))
	}
	return options
}

// pickDefault возвращает code, если он есть в списке, иначе первую валюту.
func pickDefault(currencies []models.Currency, code string) string {
	for _, c := range currencies {
		if c.Code == code {
			return code
		}
	}
	if len(currencies) == 0 {
		return ""
	}
	return currencies[0].Code
}

type Converter struct {
	cache       service.RateCache
	maxAge      time.Duration
	defaultFrom string
	defaultTo   string
	out         io.Writer
}

func NewConverter(cache service.RateCache, maxAge time.Duration, defaultFrom, defaultTo string, out io.Writer) *Converter {
	return &Converter{
		cache:       cache,
		maxAge:      maxAge,
		defaultFrom: defaultFrom,
		defaultTo:   defaultTo,
		out:         out,
	}
}

// Prepare проверяет свежесть курсов и печатает сообщение о статусе.
// Возвращает список валют; пустой список значит, что конвертировать не по чему.
func (c *Converter) Prepare(ctx context.Context) []models.Currency {
	fmt.Fprintln(c.out, headerStyle.Render("CURRENCY CONVERTER"))

	status := c.cache.EnsureFresh(ctx, c.maxAge)
	if msg := StatusMessage(status); msg != "" {
		style := warnStyle
		if !status.Usable() {
			style = errorStyle
		}
		fmt.Fprintln(c.out, style.Render(msg))
	}

	currencies, _ := c.cache.Currencies(ctx)
	if len(currencies) > 0 {
		fmt.Fprintln(c.out, infoStyle.Render(fmt.Sprintf("%d currencies available", len(currencies))))
	}
	return currencies
}

// Convert выполняет одну конвертацию и печатает результат или сообщение об ошибке.
func (c *Converter) Convert(ctx context.Context, amountStr, from, to string) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(MsgInvalidAmount))
		return
	}

	conv, err := c.cache.Convert(ctx, amount, from, to)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidAmount):
			fmt.Fprintln(c.out, errorStyle.Render(MsgInvalidAmount))
		case errors.Is(err, custom_err.ErrNoData):
			fmt.Fprintln(c.out, errorStyle.Render(MsgNoData))
		case errors.Is(err, custom_err.ErrMissingCurrency):
			fmt.Fprintln(c.out, errorStyle.Render(fmt.Sprintf("No rate for %s/%s", from, to)))
		default:
			fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
		}
		return
	}

	fmt.Fprintln(c.out, resultStyle.Render(FormatResult(conv)))
	if conv.Status == models.StatusStale {
		fmt.Fprintln(c.out, warnStyle.Render(MsgStale))
	}
}

// Run интерактивный цикл: выбор валют, ввод суммы, обмен местами.
func (c *Converter) Run(ctx context.Context) error {
	currencies := c.Prepare(ctx)
	if len(currencies) == 0 {
		return nil
	}

	options := currencyOptions(currencies)
	from := pickDefault(currencies, c.defaultFrom)
	to := pickDefault(currencies, c.defaultTo)
	amountStr := "1"

	for {
		action := actionConvert
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("From").
					Options(options...).
					Height(8).
					Value(&from),
				huh.NewSelect[string]().
					Title("To").
					Options(options...).
					Height(8).
					Value(&to),
				huh.NewInput().
					Title("Amount").
					Value(&amountStr),
			),
		).RunWithContext(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		c.Convert(ctx, amountStr, from, to)

		err = huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Next").
					Options(
						huh.NewOption("Convert again", actionConvert),
						huh.NewOption("Swap currencies", actionSwap),
						huh.NewOption("Quit", actionQuit),
					).
					Value(&action),
			),
		).RunWithContext(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case actionSwap:
			from, to = to, from
			c.Convert(ctx, amountStr, from, to)
		case actionQuit:
			return nil
		}
	}
}
