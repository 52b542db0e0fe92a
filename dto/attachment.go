// file: dto/attachment.go
package dto

type AddAttachmentReq struct {
	URL         string `json:"url" binding:"omitempty,url"`
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        uint64 `json:"size"`
	SHA256      string `json:"sha256"`
	SortOrder   uint   `json:"sort_order"`
}
