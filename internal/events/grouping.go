package events

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

// groupNamespace scopes the name-based group ids.
var groupNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://sportslive/events"))

var statusAliases = map[string]string{
	"en vivo":    constants.DisplayLive,
	"en_vivo":    constants.DisplayLive,
	"envivo":     constants.DisplayLive,
	"live":       constants.DisplayLive,
	"pronto":     constants.DisplayUpcoming,
	"próximo":    constants.DisplayUpcoming,
	"proximo":    constants.DisplayUpcoming,
	"upcoming":   constants.DisplayUpcoming,
	"finalizado": constants.DisplayFinished,
	"finished":   constants.DisplayFinished,
	"ended":      constants.DisplayFinished,
}

// statusRank orders live before upcoming before finished.
var statusRank = map[string]int{
	constants.DisplayLive:     0,
	constants.DisplayUpcoming: 1,
	constants.DisplayFinished: 2,
}

// filterStatus maps catalog filter options to display statuses.
var filterStatus = map[string]string{
	constants.StatusLive:     constants.DisplayLive,
	constants.StatusUpcoming: constants.DisplayUpcoming,
	constants.StatusFinished: constants.DisplayFinished,
}

// NormalizeStatus maps a feed status to EN_VIVO, PRONTO or FINALIZADO.
// Unknown values are treated as upcoming.
func NormalizeStatus(raw string) string {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return constants.DisplayUpcoming
}

// GroupID is the stable id of the group holding events with this title and time.
func GroupID(title, time string) string {
	return uuid.NewSHA1(groupNamespace, []byte(title+"|"+time)).String()
}

// Group merges raw events sharing a title and time. Links keep feed order
// without duplicates. The result is sorted for display.
func Group(raw []models.RawEvent) []models.EventGroup {
	groups := make([]models.EventGroup, 0, len(raw))
	index := make(map[string]int, len(raw))
	seen := make(map[string]map[string]bool, len(raw))

	for _, ev := range raw {
		title := strings.TrimSpace(ev.Title)
		if title == "" {
			continue
		}
		t := strings.TrimSpace(ev.Time)
		id := GroupID(title, t)
		status := NormalizeStatus(ev.Status)

		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			seen[id] = map[string]bool{}
			groups = append(groups, models.EventGroup{
				ID:            id,
				Title:         title,
				Time:          t,
				DisplayStatus: status,
				Links:         []string{},
			})
		}

		g := &groups[i]
		if statusRank[status] < statusRank[g.DisplayStatus] {
			g.DisplayStatus = status
		}
		if g.Category == "" {
			g.Category = strings.TrimSpace(ev.Category)
		}
		if g.Poster == "" {
			g.Poster = ev.Poster
		}
		if g.Description == "" {
			g.Description = ev.Description
		}

		link := strings.TrimSpace(ev.Link)
		if link != "" && !seen[id][link] {
			seen[id][link] = true
			g.Links = append(g.Links, link)
		}
	}

	for i := range groups {
		if groups[i].Description == "" {
			groups[i].Description = describe(groups[i])
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ga, gb := groups[a], groups[b]
		if ra, rb := statusRank[ga.DisplayStatus], statusRank[gb.DisplayStatus]; ra != rb {
			return ra < rb
		}
		if ga.Time != gb.Time {
			return ga.Time < gb.Time
		}
		return ga.Title < gb.Title
	})
	return groups
}

// Filter returns the groups matching a status option and category.
// Empty or unrecognised status options match every status.
func Filter(groups []models.EventGroup, status, category string) []models.EventGroup {
	wantStatus := filterStatus[status]
	allCategories := category == "" || category == constants.CategoryAll

	out := make([]models.EventGroup, 0, len(groups))
	for _, g := range groups {
		if wantStatus != "" && g.DisplayStatus != wantStatus {
			continue
		}
		if !allCategories && !strings.EqualFold(g.Category, category) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Categories returns the sorted distinct non-empty categories of events.
func Categories(raw []models.RawEvent) []string {
	set := map[string]bool{}
	for _, ev := range raw {
		if c := strings.TrimSpace(ev.Category); c != "" {
			set[c] = true
		}
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// flatten rebuilds feed entries from groups, one per link.
func flatten(groups []models.EventGroup) []models.RawEvent {
	var raw []models.RawEvent
	for _, g := range groups {
		base := models.RawEvent{
			Title:       g.Title,
			Time:        g.Time,
			Status:      g.DisplayStatus,
			Category:    g.Category,
			Poster:      g.Poster,
			Description: g.Description,
		}
		if len(g.Links) == 0 {
			raw = append(raw, base)
			continue
		}
		for _, link := range g.Links {
			ev := base
			ev.Link = link
			raw = append(raw, ev)
		}
	}
	return raw
}

func describe(g models.EventGroup) string {
	var b strings.Builder
	b.WriteString(g.Title)
	if g.Category != "" {
		b.WriteString(" · ")
		b.WriteString(g.Category)
	}
	if g.Time != "" {
		b.WriteString(" · ")
		b.WriteString(g.Time)
	}
	return b.String()
}
