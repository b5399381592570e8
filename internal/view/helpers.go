package view

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sewalink/backend/internal/domain/gifts"
	"sewalink/backend/internal/domain/reviews"
)

const (
	DefaultCover = "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=1200"

	starFull  = `<i class="fas fa-star"></i>`
	starHalf  = `<i class="fas fa-star-half-alt"></i>`
	starEmpty = `<i class="far fa-star"></i>`
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// AverageRating is the mean rating to one decimal, "0.0" without reviews.
func AverageRating(list []reviews.Review) string {
	return strconv.FormatFloat(reviews.Average(list), 'f', 1, 64)
}

// Stars renders rating as exactly five glyphs: full stars, at most one half
// star, then empty stars.
func Stars(rating float64) template.HTML {
	var b strings.Builder
	for _, g := range starGlyphs(rating) {
		b.WriteString(g)
	}
	return template.HTML(b.String())
}

func starGlyphs(rating float64) []string {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}

	out := make([]string, 0, 5)
	for i := 0; i < full; i++ {
		out = append(out, starFull)
	}
	if half == 1 {
		out = append(out, starHalf)
	}
	for len(out) < 5 {
		out = append(out, starEmpty)
	}
	return out
}

// TimeAgo describes t relative to now; older than a week prints the date.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return t.Format("1/2/2006")
}

// FormatDate prints month and year, e.g. "Mar 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("Jan 2006")
}

// Coins groups thousands: 1234567 -> "1,234,567".
func Coins(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// CoinAmount is Coins for stored gift amounts, which may carry a fraction:
// up to two decimals, trailing zeros dropped.
func CoinAmount(f float64) string {
	if f == math.Trunc(f) {
		return Coins(int64(f))
	}
	s := message.NewPrinter(language.English).Sprintf("%.2f", f)
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}

// Budget is the job budget in rupees, or "Not specified".
func Budget(b *float64) string {
	if b == nil || *b == 0 {
		return "Not specified"
	}
	return "रु " + strconv.FormatFloat(*b, 'f', -1, 64)
}

// AvatarURL is photo, or a generated initials avatar for name.
func AvatarURL(photo, name string) string {
	if photo != "" {
		return photo
	}
	if name == "" {
		name = "User"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=667eea&color=fff&size=150"
}

func CoverURL(cover string) string {
	if cover == "" {
		return DefaultCover
	}
	return cover
}

// Activity is one line of the recent activity feed.
type Activity struct {
	Icon string
	Text string
	At   time.Time
}

// RecentActivity merges every review with the five newest gifts and keeps
// the n most recent entries.
func RecentActivity(list []reviews.Review, agg *gifts.Aggregate, n int) []Activity {
	out := make([]Activity, 0, len(list)+5)
	for _, r := range list {
		out = append(out, Activity{
			Icon: "star",
			Text: fmt.Sprintf("Left a %s-star review", strconv.FormatFloat(r.Rating, 'f', -1, 64)),
			At:   r.CreatedAt,
		})
	}
	if agg != nil {
		recent := agg.All
		if len(recent) > 5 {
			recent = recent[:5]
		}
		for _, g := range recent {
			text := "Received " + CoinAmount(g.Amount) + " coins"
			if g.Direction == gifts.Sent {
				text = "Sent " + CoinAmount(g.Amount) + " coins"
			}
			out = append(out, Activity{Icon: "gift", Text: text, At: g.CreatedAt})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
