// Command geotag imports geotagged media, draws them on a map and reports
// per-year travel distance.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/jengzang/media-geotag-mapper/internal/config"
	"github.com/jengzang/media-geotag-mapper/internal/database"
	"github.com/jengzang/media-geotag-mapper/internal/imaging"
	"github.com/jengzang/media-geotag-mapper/internal/logging"
	"github.com/jengzang/media-geotag-mapper/internal/media"
	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/probe"
	"github.com/jengzang/media-geotag-mapper/internal/render"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
	"github.com/jengzang/media-geotag-mapper/internal/service"
	"github.com/jengzang/media-geotag-mapper/internal/watch"
)

const usage = `usage: geotag <command> [flags]

commands:
  scan    import folders into the media store
  map     write the located media as html, geojson or gpx
  stats   print per-year travel distance
  flip    invert longitudes inside a rectangle
  export  write the stored records as csv
  watch   import new files as they appear
  shrink  convert png screenshots into smaller jpegs
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Command failed")
	}
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "scan":
		return runScan(ctx, cfg, args)
	case "map":
		return runMap(ctx, cfg, args)
	case "stats":
		return runStats(ctx, cfg, args)
	case "flip":
		return runFlip(ctx, cfg, args)
	case "export":
		return runExport(ctx, cfg, args)
	case "watch":
		return runWatch(ctx, cfg, args)
	case "shrink":
		return runShrink(args)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func openStore(cfg *config.Config) (*sql.DB, *repository.MediaRepository, error) {
	conn, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, nil, err
	}
	return conn, repository.NewMediaRepository(conn), nil
}

func newBuilder(cfg *config.Config) *media.Builder {
	return media.NewBuilder(probe.NewPictureReader(), probe.NewClipReader(cfg.FFprobeBin))
}

func folders(cfg *config.Config, fs *flag.FlagSet) []string {
	if fs.NArg() > 0 {
		return fs.Args()
	}
	return cfg.MediaFolders
}

func runScan(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	limit := fs.Int("limit", cfg.FilesPerFolder, "files imported per folder, 0 for all")
	fs.Parse(args)

	conn, mediaRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	bar := progressbar.Default(-1, "Reading metadata")
	builder := newBuilder(cfg)
	builder.Progress = func(media.Item) { _ = bar.Add(1) }

	svc := service.NewScanService(mediaRepo, repository.NewScanRepository(conn), builder)
	job, err := svc.Scan(ctx, models.ScanRequest{Folders: folders(cfg, fs), FilesPerFolder: *limit})
	_ = bar.Finish()
	if job != nil {
		fmt.Printf("%d of %d records located (scan %s, %s)\n", job.Located, job.Pictures+job.Clips, job.ID, job.Status)
	}
	return err
}

func runMap(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	out := fs.String("out", "media_map.html", "output file")
	format := fs.String("format", "html", "html, geojson or gpx")
	sortBy := fs.String("sort", cfg.SortBy, "capture or modified")
	year := fs.Int("year", 0, "only records of this year by the sort key")
	cutoff := fs.Float64("cutoff", cfg.LongitudeCutoff, "longitude cutoff for antimeridian remapping")
	points := fs.Int("points", cfg.InterpolationPoints, "points per path segment")
	title := fs.String("title", "", "page title")
	noPaths := fs.Bool("no-paths", false, "skip path segments")
	fs.Parse(args)

	conn, mediaRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	drawPaths := !*noPaths
	q := models.MapQuery{
		SequenceQuery:   models.SequenceQuery{SortBy: *sortBy, Year: *year},
		Paths:           &drawPaths,
		LongitudeCutoff: cutoff,
		Points:          *points,
		Title:           *title,
	}
	svc := service.NewMapService(mediaRepo, cfg.Map, cfg.PathOptions(), models.ParseSortKey(cfg.SortBy))

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	defer f.Close()

	switch strings.ToLower(*format) {
	case "html":
		err = svc.WriteHTML(ctx, f, q)
	case "geojson":
		var fc render.FeatureCollection
		if fc, err = svc.GeoJSON(ctx, q); err == nil {
			var data []byte
			if data, err = render.MarshalGeoJSON(fc); err == nil {
				_, err = f.Write(data)
			}
		}
	case "gpx":
		var data []byte
		if data, err = svc.GPX(ctx, q); err == nil {
			_, err = f.Write(data)
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	log.Info().Str("file", *out).Str("format", *format).Msg("Map written")
	return nil
}

func runStats(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	unit := fs.String("unit", cfg.DistanceUnit, "miles or kilometers")
	sortBy := fs.String("sort", cfg.SortBy, "capture or modified")
	year := fs.Int("year", 0, "only report this year")
	fs.Parse(args)

	conn, mediaRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	svc := service.NewStatsService(mediaRepo, cfg.DistanceUnit, models.ParseSortKey(cfg.SortBy))
	report, err := svc.Yearly(ctx, models.StatsQuery{
		SequenceQuery: models.SequenceQuery{SortBy: *sortBy, Year: *year},
		Unit:          *unit,
	})
	if err != nil {
		return err
	}

	for _, n := range report.Notices {
		fmt.Println("note:", n)
	}
	fmt.Printf("%-6s %8s %14s\n", "year", "geotags", report.Unit)
	for _, s := range report.Stats {
		fmt.Printf("%-6d %8d %14.2f\n", s.Year, s.GeotagCount, s.TotalDistance)
	}
	fmt.Printf("total %.2f %s, longest step %.2f, median step %.2f\n",
		report.Summary.TotalDistance, report.Unit, report.Summary.LongestStep, report.Summary.MedianStep)
	return nil
}

func runFlip(ctx context.Context, cfg *config.Config, args []string) error {
	rect := models.Rect{}
	if cfg.FlipRect != nil {
		rect = *cfg.FlipRect
	}

	fs := flag.NewFlagSet("flip", flag.ExitOnError)
	fs.Float64Var(&rect.South, "south", rect.South, "southern latitude bound")
	fs.Float64Var(&rect.North, "north", rect.North, "northern latitude bound")
	fs.Float64Var(&rect.West, "west", rect.West, "western longitude bound")
	fs.Float64Var(&rect.East, "east", rect.East, "eastern longitude bound")
	folder := fs.String("folder", "", "only records under this path prefix")
	fs.Parse(args)

	conn, mediaRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := service.NewCorrectionService(mediaRepo).FlipLongitude(ctx, rect, *folder)
	if err != nil {
		return err
	}
	fmt.Printf("%d records flipped\n", n)
	return nil
}

func runExport(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "media.csv", "output file")
	folder := fs.String("folder", "", "only records under this path prefix")
	fs.Parse(args)

	conn, mediaRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	defer f.Close()

	n, err := service.NewMediaService(mediaRepo).ExportCSV(ctx, f, *folder)
	if err != nil {
		return err
	}
	log.Info().Int("records", n).Str("file", *out).Msg("Records exported")
	return nil
}

func runWatch(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Parse(args)

	dirs := folders(cfg, fs)
	if len(dirs) == 0 {
		return service.ErrNoFolders
	}

	conn, mediaRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	return watch.New(dirs, newBuilder(cfg), mediaRepo).Run(ctx)
}

func runShrink(args []string) error {
	fs := flag.NewFlagSet("shrink", flag.ExitOnError)
	src := fs.String("src", ".", "folder holding png files")
	dst := fs.String("dst", "shrunk", "output folder")
	factor := fs.Int("factor", 2, "integer divisor of both dimensions")
	quality := fs.Int("quality", imaging.DefaultQuality, "jpeg quality")
	caption := fs.String("caption", "", "text stamped in the corner")
	fs.Parse(args)

	written, err := imaging.ShrinkAll(*src, *dst, imaging.Options{Factor: *factor, Quality: *quality, Caption: *caption})
	for _, w := range written {
		fmt.Println(w)
	}
	return err
}
