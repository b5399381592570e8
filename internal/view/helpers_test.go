package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sewalink/backend/internal/domain/gifts"
	"sewalink/backend/internal/domain/reviews"
)

func TestEscape(t *testing.T) {
	out := Escape(`<script>&"'`)
	assert.Equal(t, "&lt;script&gt;&amp;&quot;&#039;", out)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, `"`)
	assert.NotContains(t, out, "'")
	assert.Equal(t, "", Escape(""))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, "0.0", AverageRating(nil))
	assert.Equal(t, "4.5", AverageRating([]reviews.Review{{Rating: 4}, {Rating: 5}}))
	assert.Equal(t, "3.7", AverageRating([]reviews.Review{{Rating: 3}, {Rating: 4}, {Rating: 4}}))
	assert.Equal(t, "5.0", AverageRating([]reviews.Review{{Rating: 5}}))
}

func TestStars(t *testing.T) {
	cases := []struct {
		rating            float64
		full, half, empty int
	}{
		{0, 0, 0, 5},
		{1, 1, 0, 4},
		{2.4, 2, 0, 3},
		{2.5, 2, 1, 2},
		{3.2, 3, 0, 2},
		{4.7, 4, 1, 0},
		{5, 5, 0, 0},
		{-1, 0, 0, 5},
		{9, 5, 0, 0},
	}
	for _, tc := range cases {
		html := string(Stars(tc.rating))
		assert.Equal(t, tc.full, strings.Count(html, starFull), "full for %v", tc.rating)
		assert.Equal(t, tc.half, strings.Count(html, starHalf), "half for %v", tc.rating)
		assert.Equal(t, tc.empty, strings.Count(html, starEmpty), "empty for %v", tc.rating)
		assert.Equal(t, 5, strings.Count(html, "<i "), "glyphs for %v", tc.rating)
	}

	for r := 0.0; r <= 5.0; r += 0.05 {
		assert.Len(t, starGlyphs(r), 5)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", TimeAgo(now.Add(-45*time.Second), now))
	assert.Equal(t, "5m ago", TimeAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", TimeAgo(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", TimeAgo(now.Add(-48*time.Hour), now))
	assert.Equal(t, "7/10/2024", TimeAgo(now.Add(-10*24*time.Hour), now))
	assert.Equal(t, "Just now", TimeAgo(now.Add(time.Minute), now))
	assert.Equal(t, "Unknown", TimeAgo(time.Time{}, now))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 2024", FormatDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Unknown", FormatDate(time.Time{}))
}

func TestCoinsAndBudget(t *testing.T) {
	assert.Equal(t, "0", Coins(0))
	assert.Equal(t, "950", Coins(950))
	assert.Equal(t, "1,234,567", Coins(1234567))
	assert.Equal(t, "1,200", CoinAmount(1200))
	assert.Equal(t, "12.5", CoinAmount(12.5))
	assert.Equal(t, "1,000.25", CoinAmount(1000.25))

	b := 2500.0
	assert.Equal(t, "रु 2500", Budget(&b))
	zero := 0.0
	assert.Equal(t, "Not specified", Budget(&zero))
	assert.Equal(t, "Not specified", Budget(nil))
}

func TestImageFallbacks(t *testing.T) {
	assert.Equal(t, "https://x/me.png", AvatarURL("https://x/me.png", "Ram"))
	assert.Equal(t, "https://ui-avatars.com/api/?name=Ram+Thapa&background=667eea&color=fff&size=150", AvatarURL("", "Ram Thapa"))
	assert.Contains(t, AvatarURL("", ""), "name=User")
	assert.Equal(t, DefaultCover, CoverURL(""))
	assert.Equal(t, "https://x/c.png", CoverURL("https://x/c.png"))
}

func TestRecentActivity(t *testing.T) {
	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	revs := []reviews.Review{
		{Rating: 5, CreatedAt: base.Add(3 * time.Hour)},
		{Rating: 4, CreatedAt: base},
	}
	agg := &gifts.Aggregate{}
	for i := 0; i < 7; i++ {
		dir := gifts.Received
		if i%2 == 0 {
			dir = gifts.Sent
		}
		agg.All = append(agg.All, gifts.Gift{Amount: float64(10 * (i + 1)), Direction: dir, CreatedAt: base.Add(time.Duration(10-i) * time.Hour)})
	}

	got := RecentActivity(revs, agg, 5)
	assert.Len(t, got, 5)
	assert.Equal(t, "Sent 10 coins", got[0].Text)
	assert.Equal(t, "gift", got[0].Icon)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].At.After(got[i-1].At))
	}

	// only the five newest gifts are considered
	got = RecentActivity(revs, agg, 20)
	assert.Len(t, got, 7)
	assert.Equal(t, "Left a 5-star review", got[5].Text)
	assert.Equal(t, "Left a 4-star review", got[6].Text)

	assert.Empty(t, RecentActivity(nil, nil, 5))
}
