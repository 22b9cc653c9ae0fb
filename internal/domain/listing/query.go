package listing

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultRadiusKm = 10.0
	MaxRadiusKm     = 100.0
	DefaultNearby   = 20
	MaxNearby       = 100
)

var (
	ErrInvalidLatitude  = errors.New("lat must be a number between -90 and 90")
	ErrInvalidLongitude = errors.New("lng must be a number between -180 and 180")
	ErrInvalidRadius    = errors.New("radius must be greater than 0 and at most 100 km")
)

// NearbyQuery is a radius search around a point.
type NearbyQuery struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
	Limit    int
}

// ParseNearby reads lat, lng, radius (km) and limit from a query string.
func ParseNearby(q url.Values) (NearbyQuery, error) {
	nq := NearbyQuery{RadiusKm: DefaultRadiusKm, Limit: DefaultNearby}

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nq, ErrInvalidLatitude
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nq, ErrInvalidLongitude
	}
	nq.Lat, nq.Lng = lat, lng

	if raw := q.Get("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(r) || r <= 0 || r > MaxRadiusKm {
			return nq, ErrInvalidRadius
		}
		nq.RadiusKm = r
	}

	if raw := q.Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			nq.Limit = l
		}
	}
	if nq.Limit > MaxNearby {
		nq.Limit = MaxNearby
	}
	return nq, nil
}

// NearbySQL builds the radius search over table. Arguments are
// $1 lat, $2 lng, $3 radius km, $4 limit.
func NearbySQL(table, columns string) string {
	return `
		SELECT ` + columns + `,
		       ST_Distance(location::geography, ST_SetSRID(ST_MakePoint($2::float8, $1::float8), 4326)::geography) / 1000 AS distance_km
		FROM ` + table + `
		WHERE deleted_at IS NULL AND publish_status = 'PUBLISHED' AND location IS NOT NULL
		  AND ST_DWithin(location::geography, ST_SetSRID(ST_MakePoint($2::float8, $1::float8), 4326)::geography, $3::float8 * 1000)
		ORDER BY distance_km ASC
		LIMIT $4::int`
}

// PointSQL is a nullable PostGIS point built from the lat and lng
// placeholders. Either being NULL yields NULL.
func PointSQL(latArg, lngArg int) string {
	return fmt.Sprintf(
		"CASE WHEN $%[1]d::float8 IS NULL OR $%[2]d::float8 IS NULL THEN NULL ELSE ST_SetSRID(ST_MakePoint($%[2]d::float8, $%[1]d::float8), 4326) END",
		latArg, lngArg)
}
