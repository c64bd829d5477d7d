package util

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "text/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
var whitespace = regexp.MustCompile(`\s+`)

// NormalizeCourseName 大纲对象名里的课程名：去重音、去特殊字符、
// 空格转下划线、全大写（沿用原 [Código-NOMBRE__SILABO.ext] 约定）
func NormalizeCourseName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	plain = nonAlnum.ReplaceAllString(plain, "")
	plain = whitespace.ReplaceAllString(strings.TrimSpace(plain), "_")
	return strings.ToUpper(plain)
}

// SyllabusObjectName 生成防碰撞的大纲对象键和展示文件名
func SyllabusObjectName(code, courseName, originalFilename string) (objectKey string, displayName string) {
	ext := ""
	if i := strings.LastIndex(originalFilename, "."); i >= 0 {
		ext = originalFilename[i:]
	}
	display := fmt.Sprintf("%s-%s__SILABO%s", code, NormalizeCourseName(courseName), ext)
	return fmt.Sprintf("silabos/%d_%s", time.Now().UnixMilli(), display), display
}

// FileExt 小写扩展名（含点）
func FileExt(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return strings.ToLower(filename[i:])
	}
	return ""
}
