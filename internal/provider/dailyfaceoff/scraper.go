// Package dailyfaceoff scrapes published line combinations and starting
// goaltenders from DailyFaceoff team pages. The site embeds structured
// Next.js JSON in each page, so parsing is a script-tag lookup rather
// than brittle HTML traversal.
package dailyfaceoff

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/config"
	"github.com/hmelo/puckline/pkg/httputil"
	"github.com/hmelo/puckline/pkg/logger"
)

// teamSlugs maps NHL abbreviations to DailyFaceoff URL slugs.
var teamSlugs = map[string]string{
	"ANA": "anaheim-ducks",
	"BOS": "boston-bruins",
	"BUF": "buffalo-sabres",
	"CGY": "calgary-flames",
	"CAR": "carolina-hurricanes",
	"CHI": "chicago-blackhawks",
	"COL": "colorado-avalanche",
	"CBJ": "columbus-blue-jackets",
	"DAL": "dallas-stars",
	"DET": "detroit-red-wings",
	"EDM": "edmonton-oilers",
	"FLA": "florida-panthers",
	"LAK": "los-angeles-kings",
	"MIN": "minnesota-wild",
	"MTL": "montreal-canadiens",
	"NSH": "nashville-predators",
	"NJD": "new-jersey-devils",
	"NYI": "new-york-islanders",
	"NYR": "new-york-rangers",
	"OTT": "ottawa-senators",
	"PHI": "philadelphia-flyers",
	"PIT": "pittsburgh-penguins",
	"SJS": "san-jose-sharks",
	"SEA": "seattle-kraken",
	"STL": "st-louis-blues",
	"TBL": "tampa-bay-lightning",
	"TOR": "toronto-maple-leafs",
	"UTA": "utah-hockey-club",
	"VAN": "vancouver-canucks",
	"VGK": "vegas-golden-knights",
	"WSH": "washington-capitals",
	"WPG": "winnipeg-jets",
}

// Scraper fetches line combinations. It implements the optional
// LineCombinations provider operation.
type Scraper struct {
	baseURL   string
	userAgent string
	http      *httputil.Client
	log       *logger.Logger
}

// New creates a scraper from configuration.
func New(cfg *config.Config, log *logger.Logger) *Scraper {
	return &Scraper{
		baseURL:   cfg.DailyFaceoff.BaseURL,
		userAgent: cfg.DailyFaceoff.UserAgent,
		http:      httputil.New(log, 10*time.Second).WithRateLimit(1, 1),
		log:       log,
	}
}

// TeamLines scrapes one team's line combination page. Unknown team
// abbreviations return an error rather than a guessed slug.
func (s *Scraper) TeamLines(ctx context.Context, team string) (*contracts.TeamLines, error) {
	slug, ok := teamSlugs[strings.ToUpper(team)]
	if !ok {
		return nil, fmt.Errorf("no dailyfaceoff slug for team %q", team)
	}

	url := fmt.Sprintf("%s/%s/line-combinations", s.baseURL, slug)
	resp, err := s.http.GetWithHeaders(ctx, url, map[string]string{"User-Agent": s.userAgent})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch line combinations for %s: %w", team, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching lines for %s", resp.StatusCode, team)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page for %s: %w", team, err)
	}

	return parseDocument(doc, strings.ToUpper(team))
}

// parseDocument extracts the embedded Next.js payload and folds it into
// the provider-neutral lines shape.
func parseDocument(doc *goquery.Document, team string) (*contracts.TeamLines, error) {
	raw := doc.Find("script#__NEXT_DATA__").Text()
	if raw == "" {
		return nil, fmt.Errorf("no embedded data on page for %s", team)
	}

	var payload nextData
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode embedded data for %s: %w", team, err)
	}

	combos := payload.Props.PageProps.Combinations
	if len(combos.Players) == 0 {
		return nil, fmt.Errorf("no combinations published for %s", team)
	}

	lines := &contracts.TeamLines{
		Team:         team,
		Source:       combos.SourceName,
		CapturedAt:   time.Now().UTC(),
		ForwardLines: make(map[int][]string),
		DefensePairs: make(map[int][]string),
		PowerPlay:    make(map[int][]string),
	}

	// Group keys look like ev_f1, ev_d2, pp_pp1, ev_g1
	for _, p := range combos.Players {
		key := p.CategoryIdentifier + "_" + p.GroupIdentifier
		switch {
		case strings.HasPrefix(key, "ev_f"):
			if n, ok := groupNumber(key, "ev_f"); ok {
				lines.ForwardLines[n] = append(lines.ForwardLines[n], p.Name)
			}
		case strings.HasPrefix(key, "ev_d"):
			if n, ok := groupNumber(key, "ev_d"); ok {
				lines.DefensePairs[n] = append(lines.DefensePairs[n], p.Name)
			}
		case strings.HasPrefix(key, "pp_pp"):
			if n, ok := groupNumber(key, "pp_pp"); ok {
				lines.PowerPlay[n] = append(lines.PowerPlay[n], p.Name)
			}
		case strings.HasSuffix(key, "_g1"):
			// Starter first
			lines.Goalies = append([]string{p.Name}, lines.Goalies...)
		case strings.HasSuffix(key, "_g2"):
			lines.Goalies = append(lines.Goalies, p.Name)
		}
	}

	return lines, nil
}

func groupNumber(key, prefix string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(strings.TrimPrefix(key, prefix), "%d", &n); err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

type nextData struct {
	Props struct {
		PageProps struct {
			Combinations struct {
				TeamName   string         `json:"teamName"`
				SourceName string         `json:"sourceName"`
				UpdatedAt  string         `json:"updatedAt"`
				Players    []comboPlayer  `json:"players"`
			} `json:"combinations"`
		} `json:"pageProps"`
	} `json:"props"`
}

type comboPlayer struct {
	Name               string `json:"name"`
	PlayerID           int64  `json:"playerId"`
	GroupIdentifier    string `json:"groupIdentifier"`
	CategoryIdentifier string `json:"categoryIdentifier"`
	PositionIdentifier string `json:"positionIdentifier"`
}
