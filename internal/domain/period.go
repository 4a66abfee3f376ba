package domain

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("período inválido")

// Period é um intervalo de datas inclusivo
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod normaliza as datas para meia-noite UTC e valida a ordem
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: Day(start), End: Day(end)}
	if p.Start.IsZero() || p.End.IsZero() || p.Start.After(p.End) {
		return Period{}, ErrInvalidPeriod
	}
	return p, nil
}

// TrailingWindow devolve a janela de `days` dias terminando em `now` (inclusive)
func TrailingWindow(now time.Time, days int) Period {
	end := Day(now)
	return Period{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// CurrentMonth devolve o mês corrente até `now`
func CurrentMonth(now time.Time) Period {
	end := Day(now)
	return Period{Start: time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC), End: end}
}

func (p Period) StartDate() string {
	return p.Start.Format(time.DateOnly)
}

func (p Period) EndDate() string {
	return p.End.Format(time.DateOnly)
}

// Day devolve a data de t no seu próprio fuso, como meia-noite UTC
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
