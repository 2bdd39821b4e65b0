package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImageData = errors.New("invalid image data")

// 前端允许提交的图片格式
var allowedImageExts = map[string]bool{
	"png":  true,
	"jpeg": true,
	"jpg":  true,
	"gif":  true,
	"webp": true,
}

// IsBase64Image 判断是否为 data:image 形式的 base64 图片
func IsBase64Image(data string) bool {
	return strings.HasPrefix(data, "data:image/")
}

// DecodeBase64Image 解析 data:image/{ext};base64,{data} 形式的图片，
// 返回解码后的字节和扩展名
func DecodeBase64Image(data string) ([]byte, string, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return nil, "", ErrInvalidImageData
	}

	head, payload, ok := strings.Cut(data, ";base64,")
	if !ok {
		return nil, "", ErrInvalidImageData
	}

	ext := strings.TrimPrefix(head, "data:image/")
	if !allowedImageExts[ext] {
		return nil, "", ErrInvalidImageData
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImageData
	}
	if len(raw) == 0 {
		return nil, "", ErrInvalidImageData
	}

	return raw, ext, nil
}
