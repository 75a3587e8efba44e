package bundle

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/identity"
)

// StationExportName returns the file name of a collection package exported
// for the central server, e.g. collection_station_Sao_Jose_2024-05-01.json.
// Accents are folded and whitespace runs become underscores so the name
// survives any filesystem or USB stick it is carried on.
func StationExportName(city string, t time.Time) string {
	return constants.StationExportPrefix + slug(city) + "_" + identity.Date(t) + constants.BundleExtension
}

// BackupName returns the file name of a full backup, built from the
// timestamp with characters that filesystems reject replaced by dashes.
func BackupName(t time.Time) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(identity.Timestamp(t))
	return constants.BackupPrefix + stamp + constants.BundleExtension
}

func slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	if folded == "" {
		folded = "station"
	}
	return strings.Join(strings.Fields(folded), "_")
}
