package usecase

import (
	"net"

	"github.com/oschwald/geoip2-golang"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// maxmindResolver resolves countries from a local MaxMind GeoLite2 database.
type maxmindResolver struct {
	reader *geoip2.Reader
}

// Country returns the ISO country code for the IP, empty when unknown.
func (m *maxmindResolver) Country(ip net.IP) (string, error) {
	record, err := m.reader.Country(ip)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to resolve country")
	}
	return record.Country.IsoCode, nil
}

// Close closes the underlying database reader.
func (m *maxmindResolver) Close() error {
	return m.reader.Close()
}

// OpenGeoResolver opens a MaxMind database file as a GeoResolver.
func OpenGeoResolver(path string) (GeoResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open geoip database")
	}
	return &maxmindResolver{reader: reader}, nil
}
