package directory

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"esbBot/internal/domain"
	"esbBot/internal/usecase/esbconfig"
)

// ConfigSource hands out the active esb configuration.
type ConfigSource interface {
	Current() esbconfig.Config
}

type Service struct {
	config  ConfigSource
	fetcher domain.DirectoryFetcher
}

func NewService(config ConfigSource, fetcher domain.DirectoryFetcher) *Service {
	return &Service{
		config:  config,
		fetcher: fetcher,
	}
}

// Lookup runs the esb command on already split arguments. Usage problems and
// remote errors come back as chat text; transport, decoding and formatting
// failures are returned as errors.
func (s *Service) Lookup(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return MsgMissingEntityType, nil
	}

	kind := Classify(args[0])
	switch kind {
	case KindProject:
		if len(args) != 2 {
			return MsgMissingProjectID, nil
		}
		return s.lookup(ctx, esbconfig.KeyProjectURLTemplate, "project_id", args[1], projectTemplate, projectDateFields)
	case KindEmployee:
		if len(args) != 2 {
			return MsgMissingEmployeeID, nil
		}
		return s.lookup(ctx, esbconfig.KeyEmployeeURLTemplate, "employee_id", args[1], employeeTemplate, employeeDateFields)
	default:
		return MsgInvalidEntityType, nil
	}
}

func (s *Service) lookup(
	ctx context.Context,
	templateKey string,
	idName string,
	id string,
	textTemplate string,
	dateFields []string,
) (string, error) {
	cfg := s.config.Current()

	target, err := BuildURL(cfg, templateKey, idName, id)
	if err != nil {
		return "", err
	}

	proxies := domain.Proxies{
		HTTP:  cfg.Get(esbconfig.KeyHTTPProxy),
		HTTPS: cfg.Get(esbconfig.KeyHTTPSProxy),
	}

	log.Printf("esb: lookup %s=%s on %s", idName, id, stripQuery(target))

	resp, err := s.fetcher.Get(ctx, target, proxies)
	if err != nil {
		return "", err
	}

	rec, err := decodeRecord(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("esb: directory answered %d for %s=%s", resp.StatusCode, idName, id)
		return render(remoteErrorTemplate, rec)
	}

	if err := rec.normalize(dateFields); err != nil {
		return "", err
	}
	return render(textTemplate, rec)
}

// BuildURL expands the URL template stored under templateKey with every
// configuration value plus the entity identifier.
func BuildURL(cfg esbconfig.Config, templateKey, idName, id string) (string, error) {
	values := cfg.Merge(map[string]string{idName: id})
	out, err := expand(cfg.Get(templateKey), values)
	if err != nil {
		return "", fmt.Errorf("directory: %s: %w", templateKey, err)
	}
	return out, nil
}

// stripQuery keeps the client secret out of the logs.
func stripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
