package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"net/http"
	"strconv"
)

func BuildListQuery(r *http.Request) requests.ListQuery {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get(constvars.QueryParamPage))
	if err != nil || page <= 0 {
		page = 1
	}

	limit, err := strconv.Atoi(query.Get(constvars.QueryParamLimit))
	if err != nil || limit <= 0 {
		limit = 10
	}

	return requests.ListQuery{
		Page:       page,
		Limit:      limit,
		Sort:       query.Get(constvars.QueryParamSort),
		SearchTerm: query.Get(constvars.QueryParamSearchTerm),
	}
}

func ParseIndexParam(value string) (int, error) {
	index, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, fmt.Errorf("negative index %d", index)
	}
	return index, nil
}

func ValidateFileSize(size int64, maxSizeInMB int) error {
	if maxSizeInMB > 0 && size > int64(maxSizeInMB)*1024*1024 {
		return fmt.Errorf("file exceeds maximum allowed size of %dMB", maxSizeInMB)
	}
	return nil
}

// ReadStagedFile loads one multipart file into memory after checking its size.
func ReadStagedFile(header *multipart.FileHeader, maxSizeInMB int) (requests.StagedFile, error) {
	if err := ValidateFileSize(header.Size, maxSizeInMB); err != nil {
		return requests.StagedFile{}, exceptions.ErrFileTooLarge(err, header.Filename, maxSizeInMB)
	}

	file, err := header.Open()
	if err != nil {
		return requests.StagedFile{}, exceptions.ErrCannotParseMultipartForm(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return requests.StagedFile{}, exceptions.ErrReadBody(err)
	}

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return requests.StagedFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}

// ReadStagedFiles reads every file sent under field. A missing field yields no files.
func ReadStagedFiles(form *multipart.Form, field string, maxSizeInMB int) ([]requests.StagedFile, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	files := make([]requests.StagedFile, 0, len(headers))
	for _, header := range headers {
		file, err := ReadStagedFile(header, maxSizeInMB)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// ReadOptionalStagedFile returns nil when field carries no file.
func ReadOptionalStagedFile(form *multipart.Form, field string, maxSizeInMB int) (*requests.StagedFile, error) {
	if form == nil || len(form.File[field]) == 0 {
		return nil, nil
	}
	file, err := ReadStagedFile(form.File[field][0], maxSizeInMB)
	if err != nil {
		return nil, err
	}
	return &file, nil
}
