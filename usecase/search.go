package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kabang/kabang/commands"
	"github.com/kabang/kabang/core/config"
	"github.com/kabang/kabang/core/database"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/bangcache"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/sirupsen/logrus"
)

// queryPattern splits "!trigger terms" and "!!command args".
var queryPattern = regexp.MustCompile(`^(!!?)(\w+)\s*(.*)$`)

// ParsedQuery is a query split into its trigger and the remaining terms.
type ParsedQuery struct {
	Command bool
	Trigger string
	Terms   string
}

// ParseQuery returns ok=false when the query carries no trigger.
func ParseQuery(query string) (ParsedQuery, bool) {
	m := queryPattern.FindStringSubmatch(query)
	if m == nil {
		return ParsedQuery{}, false
	}
	return ParsedQuery{Command: m[1] == "!!", Trigger: m[2], Terms: m[3]}, true
}

// BuildSearchURL substitutes the first {query} with the encoded terms.
// Templates without a placeholder are returned unchanged.
func BuildSearchURL(template, terms string) string {
	return strings.Replace(template, "{query}", encodeQueryComponent(terms), 1)
}

// encodeQueryComponent percent-encodes everything outside the
// encodeURIComponent unreserved set and writes spaces as "+".
func encodeQueryComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte("-_.!~*'()", c) >= 0:
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// SearchService resolves queries and lets commands look triggers up the same way.
type SearchService interface {
	domainSearch.ISearchUsecase
	commands.TriggerLookup
}

type searchService struct {
	cache    *bangcache.Cache
	failover database.Failover
	repo     domainKabang.IKabangRepository
	registry *commands.Registry
	cfg      config.SearchConfig
}

func NewSearchService(cache *bangcache.Cache, failover database.Failover, repo domainKabang.IKabangRepository, registry *commands.Registry, cfg config.SearchConfig) SearchService {
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = "/dashboard"
	}
	if cfg.DashboardCommand == "" {
		cfg.DashboardCommand = commands.CommandDashboard.String()
	}
	return &searchService{
		cache:    cache,
		failover: failover,
		repo:     repo,
		registry: registry,
		cfg:      cfg,
	}
}

func (s *searchService) Resolve(ctx context.Context, query string) (domainSearch.Resolution, error) {
	if query == "" {
		return domainSearch.Resolution{}, pkgError.ValidationError("Missing query parameter")
	}

	parsed, ok := ParseQuery(query)
	if !ok {
		return s.resolveDefault(ctx, query)
	}

	if parsed.Command {
		outcome, found := s.registry.Dispatch(ctx, parsed.Trigger, parsed.Terms)
		if !found {
			logrus.Debugf("[SEARCH] Unknown command !!%s, searching instead", parsed.Trigger)
			return s.resolveDefault(ctx, query)
		}
		return domainSearch.Resolution{
			Kind:     domainSearch.ResolutionCommand,
			Location: outcome.Location,
			Trigger:  parsed.Trigger,
			Terms:    parsed.Terms,
			Outcome:  &outcome,
		}, nil
	}

	if strings.EqualFold(parsed.Trigger, s.cfg.DashboardCommand) {
		return domainSearch.Resolution{
			Kind:     domainSearch.ResolutionDashboard,
			Location: s.cfg.DashboardPath,
			Trigger:  parsed.Trigger,
		}, nil
	}

	if record, found := s.LookupTrigger(ctx, parsed.Trigger); found {
		return domainSearch.Resolution{
			Kind:     domainSearch.ResolutionBang,
			Location: BuildSearchURL(record.URL, parsed.Terms),
			Trigger:  parsed.Trigger,
			Terms:    parsed.Terms,
		}, nil
	}

	// An unknown trigger is searched for verbatim, "!" included.
	return s.resolveDefault(ctx, query)
}

func (s *searchService) resolveDefault(ctx context.Context, terms string) (domainSearch.Resolution, error) {
	target, ok := s.defaultURL(ctx)
	if !ok {
		return domainSearch.Resolution{}, pkgError.NotFoundError("No default search engine configured")
	}
	return domainSearch.Resolution{
		Kind:     domainSearch.ResolutionDefault,
		Location: BuildSearchURL(target, terms),
		Terms:    terms,
	}, nil
}

// LookupTrigger checks the cache first, then the store. A store hit is cached.
func (s *searchService) LookupTrigger(ctx context.Context, bang string) (domainKabang.Kabang, bool) {
	if record, ok := s.cache.GetRecord(bang); ok {
		return record, true
	}

	record, err := database.WithFallback(ctx, s.failover, func(ctx context.Context) (*domainKabang.Kabang, error) {
		return optional(s.repo.GetByBang(ctx, bang))
	}, nil)
	if err != nil {
		logrus.WithError(err).Errorf("[SEARCH] Failed to look up !%s", bang)
		return domainKabang.Kabang{}, false
	}
	if record == nil {
		return domainKabang.Kabang{}, false
	}

	s.cache.SetFull(*record)
	return *record, true
}

func (s *searchService) defaultURL(ctx context.Context) (string, bool) {
	if target, ok := s.cache.GetDefault(); ok {
		return target, true
	}

	record, err := database.WithFallback(ctx, s.failover, func(ctx context.Context) (*domainKabang.Kabang, error) {
		return optional(s.repo.GetDefault(ctx))
	}, nil)
	if err != nil {
		logrus.WithError(err).Error("[SEARCH] Failed to load the default engine")
		return "", false
	}
	if record == nil {
		return "", false
	}

	s.cache.SetDefault(record.URL)
	return record.URL, true
}

// optional turns a NotFoundError into a nil result.
func optional(record domainKabang.Kabang, err error) (*domainKabang.Kabang, error) {
	if err != nil {
		var notFound pkgError.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
