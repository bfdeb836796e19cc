package tools

import (
	"context"
	"errors"

	"github.com/janhq/jan-assistant/internal/domain/document"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type filePathArgs struct {
	FilePath string `json:"file_path" validate:"required"`
}

type filePathsArgs struct {
	FilePaths []string `json:"file_paths" validate:"required,min=1"`
}

type pageRangeArgs struct {
	FilePath  string `json:"file_path" validate:"required"`
	PageStart int    `json:"page_start" validate:"gte=1"`
	PageEnd   int    `json:"page_end" validate:"gte=0"`
}

type pdfQuestionArgs struct {
	Question string `json:"question" validate:"required"`
	FilePath string `json:"file_path"`
}

func documentTools(loader *document.Loader) []binding {
	return []binding{
		{
			spec: tool.Spec{
				Name:        "read_pdf",
				Description: "Read a PDF file and keep its text for questions.",
				Action:      "reading PDF",
				Params: []tool.Param{
					{Name: "file_path", Type: tool.TypeString, Description: "Path to the PDF file", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in filePathArgs) (string, error) {
				doc, err := loader.Load(ctx, in.FilePath)
				if err != nil {
					return "", err
				}
				return document.FormatRead(in.FilePath, doc.Text()), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "read_multiple_pdfs",
				Description: "Read several PDF files at once.",
				Action:      "reading PDFs",
				Params: []tool.Param{
					{Name: "file_paths", Type: tool.TypeArray, Items: tool.TypeString, Description: "Paths to the PDF files", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in filePathsArgs) (string, error) {
				batch, err := loader.LoadMany(ctx, in.FilePaths)
				if err != nil {
					return "", err
				}
				return document.FormatBatch(batch), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "read_pdf_text",
				Description: "Read a page range of a PDF file.",
				Action:      "reading PDF text",
				Params: []tool.Param{
					{Name: "file_path", Type: tool.TypeString, Description: "Path to the PDF file", Required: true},
					{Name: "page_start", Type: tool.TypeInteger, Description: "First page, 1-based (default 1)", Default: 1},
					{Name: "page_end", Type: tool.TypeInteger, Description: "Last page, 0 for the last page (default 0)", Default: 0},
				},
			},
			handler: bound(func(ctx context.Context, in pageRangeArgs) (string, error) {
				doc, err := loader.Inspect(ctx, in.FilePath)
				if err != nil {
					return "", err
				}
				end := in.PageEnd
				if end <= 0 || end > len(doc.Pages) {
					end = len(doc.Pages)
				}
				text, err := doc.PageRange(in.PageStart, end)
				if err != nil {
					return "", err
				}
				return document.FormatPages(in.FilePath, in.PageStart, end, text), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_pdf_info",
				Description: "Show page count and metadata of a PDF file.",
				Action:      "getting PDF info",
				Params: []tool.Param{
					{Name: "file_path", Type: tool.TypeString, Description: "Path to the PDF file", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in filePathArgs) (string, error) {
				doc, err := loader.Inspect(ctx, in.FilePath)
				if err != nil {
					return "", err
				}
				return document.FormatInfo(in.FilePath, doc.Info), nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "ask_question_about_pdf",
				Description: "Answer a question from the loaded PDF text. Load files with read_pdf first.",
				Action:      "processing question",
				Params: []tool.Param{
					{Name: "question", Type: tool.TypeString, Description: "The question to answer", Required: true},
					{Name: "file_path", Type: tool.TypeString, Description: "Restrict to one loaded file (optional)"},
				},
			},
			handler: bound(func(_ context.Context, in pdfQuestionArgs) (string, error) {
				answer, err := loader.Store().Answer(in.Question, in.FilePath)
				switch {
				case errors.Is(err, document.ErrNoDocuments):
					return "Error: No PDF files have been loaded. Please use read_pdf or read_multiple_pdfs first.", nil
				case errors.Is(err, document.ErrEmptyText):
					return "Error: No text content found in the PDF(s).", nil
				case err != nil:
					return "", err
				}
				return answer, nil
			}),
		},
		{
			spec: tool.Spec{
				Name:        "list_loaded_documents",
				Description: "List the PDF documents loaded so far.",
				Action:      "listing documents",
			},
			handler: bound(func(context.Context, noArgs) (string, error) {
				return document.FormatLoaded(loader.Store().Entries()), nil
			}),
		},
	}
}
