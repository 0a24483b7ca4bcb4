// Command ingest runs the document ingestion pipeline on a file: classify,
// rasterize, recognize, then print the extracted text or create a data-room
// document from it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/docvault/ingest/classify"
	"github.com/docvault/ingest/dataroom"
	"github.com/docvault/ingest/observability"
	"github.com/docvault/ingest/ocr"
	"github.com/docvault/ingest/ocr/tesseract"
	"github.com/docvault/ingest/pipeline"
	"github.com/docvault/ingest/raster"
)

type options struct {
	filePath   string
	lang       string
	tool       string
	toolPath   string
	dpi        int
	imagesOnly bool
	apiURL     string
	roomID     string
	folderID   string
	docName    string
	verbose    bool
	listLangs  bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingest: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "ingest: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: ingest [flags] <file>\n")
		flag.PrintDefaults()
	}
	lang := flag.String("lang", string(ocr.DefaultLanguage), "Recognition language code")
	listLangs := flag.Bool("languages", false, "List the selectable recognition languages and exit")
	tool := flag.String("tool", string(raster.ToolPdftoppm), "PDF render tool: pdftoppm, mutool, or imagemagick")
	toolPath := flag.String("tool-path", "", "Custom path to the render tool executable")
	dpi := flag.Int("dpi", 0, "Render resolution override (default 2x the PDF native 72 DPI)")
	imagesOnly := flag.Bool("images-only", false, "Accept bitmap images only (disable PDF ingestion)")
	apiURL := flag.String("api", "", "Data-room API base URL; when set the text is saved as a document")
	roomID := flag.String("room", "", "Data room ID for the created document")
	folderID := flag.String("folder", "", "Folder ID for the created document")
	docName := flag.String("name", "", "Document name (defaults to the file name without extension)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	opts.lang = *lang
	opts.listLangs = *listLangs
	opts.tool = *tool
	opts.toolPath = *toolPath
	opts.dpi = *dpi
	opts.imagesOnly = *imagesOnly
	opts.apiURL = *apiURL
	opts.roomID = *roomID
	opts.folderID = *folderID
	opts.docName = *docName
	opts.verbose = *verbose

	if opts.listLangs {
		return opts, nil
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing file path")
	}
	opts.filePath = flag.Arg(0)
	if opts.apiURL != "" && (opts.roomID == "" || opts.folderID == "") {
		return options{}, fmt.Errorf("-api requires -room and -folder")
	}
	return opts, nil
}

func run(opts options) error {
	if opts.listLangs {
		for _, info := range ocr.Languages() {
			fmt.Printf("%-10s %s\n", info.Code, info.Name)
		}
		return nil
	}

	base := logrus.New()
	base.SetOutput(os.Stderr)
	if opts.verbose {
		base.SetLevel(logrus.DebugLevel)
	}
	logger := observability.NewLogrus(base)

	data, err := os.ReadFile(opts.filePath)
	if err != nil {
		return err
	}
	file := classify.File{Name: opts.filePath, Data: data}

	cfg := pipeline.Config{
		Engine: tesseract.New(),
		Logger: logger,
		OnProgress: func(percent int) {
			fmt.Fprintf(os.Stderr, "\rprocessing... %3d%%", percent)
		},
	}
	if !opts.imagesOnly {
		cfg.Documents = raster.NewPDFRasterizer(raster.PDFOptions{
			Tool:     raster.RenderTool(opts.tool),
			ToolPath: opts.toolPath,
			DPI:      opts.dpi,
			Logger:   logger,
		})
	}
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	text, err := p.Run(context.Background(), file, ocr.Language(opts.lang))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if opts.apiURL == "" {
		fmt.Print(text)
		return nil
	}

	name := opts.docName
	if name == "" {
		name = file.BaseName()
	}
	client := dataroom.NewClient(opts.apiURL)
	doc, err := client.CreateDocument(context.Background(), dataroom.DocumentIn{
		Name:       name,
		Content:    text,
		DataRoomID: opts.roomID,
		FolderID:   opts.folderID,
	})
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	fmt.Printf("created document %s (%q) in folder %s\n", doc.ID, doc.Name, doc.FolderID)
	return nil
}
