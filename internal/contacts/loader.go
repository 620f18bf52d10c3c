package contacts

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tracer/internal/types"

	"github.com/tidwall/gjson"
)

// 加载失败的三类原因，调用方用 errors.Is 区分。
var (
	// ErrNotFound 输入文件不存在或不可读。
	ErrNotFound = errors.New("contact file not found")
	// ErrParse 文件内容不是合法 JSON，或顶层不是数组。
	ErrParse = errors.New("contact file is not a valid JSON array")
	// ErrMissingField 某条记录缺少 agent_1 / agent_2 字段（或类型不是字符串）。
	ErrMissingField = errors.New("contact record missing required field")
)

// Loader 从本地 JSON 文件加载接触记录序列。
type Loader struct {
	// Path 输入文件路径。
	Path string
	// TrimSentinels 为 true 时丢弃数组首尾的占位记录。
	// 上游某些导出器无法生成空数组，会在首尾各填一条非接触记录。
	TrimSentinels bool
}

func NewLoader(path string, trimSentinels bool) *Loader {
	return &Loader{Path: strings.TrimSpace(path), TrimSentinels: trimSentinels}
}

// Load 读取并解析整个文件，返回按文件顺序排列的记录序列。
// 任何一条记录不合法都会使整次加载失败，不返回部分结果。
func (l *Loader) Load() (types.ContactList, error) {
	if l == nil || l.Path == "" {
		return nil, fmt.Errorf("%w: 路径为空", ErrNotFound)
	}
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.Path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, l.Path, err)
	}
	return decode(raw, l.TrimSentinels)
}

func decode(raw []byte, trimSentinels bool) (types.ContactList, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: 内容不是合法 JSON", ErrParse)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: 顶层必须是数组，实际为 %s", ErrParse, doc.Type)
	}
	elems := doc.Array()
	// 占位记录本身不是接触记录，必须在字段校验之前丢弃，
	// 否则一条不含 agent 字段的占位记录会让整次加载失败。
	if trimSentinels {
		elems = trimSentinelElems(elems)
	}
	list := make(types.ContactList, 0, len(elems))
	for i, elem := range elems {
		contact, err := decodeRecord(i, elem)
		if err != nil {
			return nil, err
		}
		list = append(list, contact)
	}
	return list, nil
}

// decodeRecord 只要求 agent_1 / agent_2 两个字符串字段，其余字段忽略。
func decodeRecord(idx int, elem gjson.Result) (types.Contact, error) {
	if !elem.IsObject() {
		return types.Contact{}, fmt.Errorf("%w: 第 %d 条记录不是对象", ErrParse, idx)
	}
	a1 := elem.Get("agent_1")
	if !a1.Exists() || a1.Type != gjson.String {
		return types.Contact{}, fmt.Errorf("%w: 第 %d 条记录缺少 agent_1", ErrMissingField, idx)
	}
	a2 := elem.Get("agent_2")
	if !a2.Exists() || a2.Type != gjson.String {
		return types.Contact{}, fmt.Errorf("%w: 第 %d 条记录缺少 agent_2", ErrMissingField, idx)
	}
	return types.Contact{Agent1: a1.String(), Agent2: a2.String()}, nil
}

func trimSentinelElems(elems []gjson.Result) []gjson.Result {
	if len(elems) <= 2 {
		return nil
	}
	return elems[1 : len(elems)-1]
}
