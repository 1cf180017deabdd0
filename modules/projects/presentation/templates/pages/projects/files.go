package projects

import (
	"context"

	"github.com/a-h/templ"
	humanize "github.com/dustin/go-humanize"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

type FilesProps struct {
	ProjectURL string
	Files      []viewmodels.File
	MaxSize    int64
	CanUpload  bool
	CanDelete  bool
}

func FileURL(projectURL, fileID string) string {
	return projectURL + "/files/" + fileID
}

func DownloadURL(projectURL, fileID string) string {
	return FileURL(projectURL, fileID) + "/download"
}

func uploadForm(p *FilesProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<form class="flex flex-wrap items-center gap-2" hx-encoding="multipart/form-data"`).
			Attr("hx-post", p.ProjectURL+"/files").Attr("hx-swap", "none").
			Attr("hx-on::after-request", "if(event.detail.successful) this.reset()").Raw(`>`)
		b.Raw(`<input type="file" name="file" required class="text-sm">`)
		b.Component(ctx, base.Button(base.ButtonProps{
			Type:  "submit",
			Label: intl.T(ctx, "Files.Upload", "Upload"),
			Attrs: templ.Attributes{"data-action": "upload"},
		}))
		if p.MaxSize > 0 {
			limit := humanize.Bytes(uint64(p.MaxSize))
			b.Raw(`<span class="text-xs text-gray-500">`).Text(intl.T(ctx, "Files.MaxSize", "Up to "+limit, map[string]interface{}{"Size": limit})).Raw(`</span>`)
		}
		b.Raw(`</form>`)
	})
}

// Files lists the project documents with upload, preview and delete. It
// reloads itself on FilesEvent.
func Files(p *FilesProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex flex-col gap-3"`).Attr("id", FilesID).
			Attr("hx-get", p.ProjectURL+"/files").Attr("hx-trigger", FilesEvent+" from:body").Attr("hx-swap", "outerHTML").Raw(`>`)
		if p.CanUpload {
			b.Component(ctx, uploadForm(p))
		}
		if len(p.Files) == 0 {
			b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Files.Empty", "No files uploaded.")).Raw(`</p></div>`)
			return
		}
		b.Raw(`<ul class="divide-y divide-gray-100">`)
		for _, f := range p.Files {
			b.Raw(`<li class="flex items-center justify-between gap-2 py-2"`).Attr("data-file", f.ID).Attr("data-kind", f.Kind).Raw(`><div class="min-w-0">`)
			b.Raw(`<button type="button" class="truncate text-sm text-brand-700 hover:underline"`).
				Attr("hx-get", FileURL(p.ProjectURL, f.ID)).Attr("hx-target", "#"+dialog.RootID).Attr("hx-swap", "innerHTML").Raw(`>`).
				Text(f.Name).Raw(`</button>`)
			b.Raw(`<p class="text-xs text-gray-500">`).Text(f.Size)
			if f.UploadedBy != "" {
				b.Text(" · " + f.UploadedBy)
			}
			if f.CreatedAt != "" {
				b.Text(" · " + f.CreatedAt)
			}
			b.Raw(`</p></div><div class="flex shrink-0 gap-1">`)
			b.Component(ctx, base.Button(base.ButtonProps{
				Variant: base.ButtonGhost,
				Href:    DownloadURL(p.ProjectURL, f.ID),
				Label:   intl.T(ctx, "Files.Download", "Download"),
				Class:   "px-2 py-1",
			}))
			if p.CanDelete {
				b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
					ID:           "delete-file-" + f.ID,
					Title:        intl.T(ctx, "Files.Delete.Title", "Delete file"),
					Text:         intl.T(ctx, "Files.Delete.Text", f.Name+" will be removed.", map[string]interface{}{"Name": f.Name}),
					ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
					Action:       FileURL(p.ProjectURL, f.ID),
					Swap:         "none",
					Trigger: base.ButtonProps{
						Variant: base.ButtonGhost,
						Label:   intl.T(ctx, "Actions.Delete", "Delete"),
						Class:   "px-2 py-1 text-red-600",
						Attrs:   templ.Attributes{"data-action": "delete-file"},
					},
				}))
			}
			b.Raw(`</div></li>`)
		}
		b.Raw(`</ul></div>`)
	})
}

type PreviewProps struct {
	File        viewmodels.File
	DownloadURL string
}

// Preview is the auto-opening dialog that embeds a file by its kind.
func Preview(p *PreviewProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		inline := p.DownloadURL + "?inline=1"
		b.Raw(`<dialog data-autoopen class="w-full max-w-3xl rounded-lg p-0 shadow-xl backdrop:bg-black/40"`).Attr("id", PreviewID).Attr("data-kind", p.File.Kind).Raw(`>`)
		b.Raw(`<div class="flex items-center justify-between border-b border-gray-100 px-6 py-3"><h3 class="truncate text-lg font-semibold text-gray-900">`).Text(p.File.Name).Raw(`</h3>`)
		b.Raw(`<form method="dialog">`).Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonGhost,
			Type:    "submit",
			Label:   intl.T(ctx, "Dialog.Close", "Close"),
		})).Raw(`</form></div><div class="p-4">`)
		switch file.PreviewKind(p.File.Kind) {
		case file.PreviewImage:
			b.Raw(`<img class="mx-auto max-h-[70vh]"`).Attr("src", inline).Attr("alt", p.File.Name).Raw(`>`)
		case file.PreviewPDF, file.PreviewText:
			b.Raw(`<iframe class="h-[70vh] w-full rounded border border-gray-200"`).Attr("src", inline).Attr("title", p.File.Name).Raw(`></iframe>`)
		default:
			b.Raw(`<p class="text-sm text-gray-600" data-no-preview>`).Text(intl.T(ctx, "Files.NoPreview", "No preview is available for this file type.")).Raw(`</p>`)
		}
		b.Raw(`</div><div class="flex justify-end border-t border-gray-100 px-6 py-3">`)
		b.Component(ctx, base.Button(base.ButtonProps{Href: p.DownloadURL, Label: intl.T(ctx, "Files.Download", "Download")}))
		b.Raw(`</div></dialog>`)
	})
}
