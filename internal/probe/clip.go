package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/abema/go-mp4"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/normalize"
)

// Seconds between the QuickTime epoch (1904-01-01) and the Unix epoch
const appleEpochOffset = 2082844800

// ClipReader probes video containers with ffprobe, falling back to reading
// the mp4 movie header directly when ffprobe is unavailable
type ClipReader struct {
	ffprobe string
}

// NewClipReader creates a clip reader using the given ffprobe binary
func NewClipReader(ffprobeBin string) *ClipReader {
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &ClipReader{ffprobe: ffprobeBin}
}

type ffprobeOutput struct {
	Format struct {
		Tags map[string]string `json:"tags"`
	} `json:"format"`
}

// ReadTags returns the container-level tags of path
func (r *ClipReader) ReadTags(ctx context.Context, path string) (normalize.Tags, error) {
	tags, err := r.probe(ctx, path)
	if err == nil {
		return tags, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	log.Debug().Err(err).Str("path", path).Msg("ffprobe failed, reading movie header")
	fallback, mp4Err := MovieHeaderTags(path)
	if mp4Err != nil {
		return nil, fmt.Errorf("failed to probe clip: %w", errors.Join(err, mp4Err))
	}
	return fallback, nil
}

func (r *ClipReader) probe(ctx context.Context, path string) (normalize.Tags, error) {
	cmd := exec.CommandContext(ctx, r.ffprobe, "-v", "quiet", "-print_format", "json", "-show_format", path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return ParseFFprobeJSON(out)
}

// ParseFFprobeJSON extracts format.tags from ffprobe's JSON output
func ParseFFprobeJSON(data []byte) (normalize.Tags, error) {
	var parsed ffprobeOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	tags := normalize.Tags{}
	for k, v := range parsed.Format.Tags {
		tags[k] = v
	}
	return tags, nil
}

// MovieHeaderTags reads the moov/mvhd creation time of an ISO BMFF file
// and reports it under the creation_time key
func MovieHeaderTags(path string) (normalize.Tags, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".m4v":
	default:
		return nil, fmt.Errorf("%w: %s is not an ISO BMFF container", ErrNoMetadata, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clip: %w", err)
	}
	defer file.Close()

	boxes, err := mp4.ExtractBoxesWithPayload(file, nil, []mp4.BoxPath{
		{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read mp4 structure: %w", err)
	}

	for _, box := range boxes {
		mvhd, ok := box.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		creation := mvhd.GetCreationTime()
		if creation <= appleEpochOffset {
			break
		}
		t := time.Unix(int64(creation)-appleEpochOffset, 0).UTC()
		return normalize.Tags{normalize.KeyCreationTime: t.Format(time.RFC3339Nano)}, nil
	}

	return nil, fmt.Errorf("%w: no mvhd creation time in %s", ErrNoMetadata, filepath.Base(path))
}
