package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/ports"
)

// SQLGeocodeCache is the Postgres-backed geocode cache paired with
// SQLRouteCache for shared deployments.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("get geocode cache: address must not be empty")
	}

	q := `
	SELECT lat, lng, formatted_address
	FROM geocode_cache
	WHERE address = $1;
	`

	var lat, lng float64
	var formatted string
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&lat, &lng, &formatted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return &ports.GeocodeResult{
		Location:         domain.Coordinates{Lat: lat, Lng: lng},
		FormattedAddress: formatted,
	}, nil
}

func (s *SQLGeocodeCache) Put(ctx context.Context, address string, result ports.GeocodeResult) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: address must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lng, formatted_address)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
	    lng = EXCLUDED.lng,
	    formatted_address = EXCLUDED.formatted_address;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, result.Location.Lat, result.Location.Lng, result.FormattedAddress); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
