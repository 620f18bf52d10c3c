package trace

import (
	"strings"

	"tracer/internal/types"
)

// Result 保存一次追踪计算的结果映射：感染者 ID → 其直接接触者序列。
// 键集合固定为传入的感染者列表，计算过程中不增不减；
// 值保持记录在输入序列中的出现顺序，重复接触不去重。
type Result struct {
	infected []string
	contacts map[string][]string
}

// Run 对整个接触序列做一次线性扫描。
// 对每个感染者 I，结果为所有 agent_1 == I 的记录的 agent_2 子序列。
// 纯函数，相同输入必然产生相同输出。
func Run(list types.ContactList, infected []string) *Result {
	r := &Result{
		infected: append([]string(nil), infected...),
		contacts: make(map[string][]string, len(infected)),
	}
	for _, id := range r.infected {
		r.contacts[id] = []string{}
	}
	for _, id := range r.infected {
		for _, c := range list {
			if c.Agent1 == id {
				r.contacts[id] = append(r.contacts[id], c.Agent2)
			}
		}
	}
	return r
}

// Infected 返回固定顺序的感染者 ID 列表。
func (r *Result) Infected() []string {
	return append([]string(nil), r.infected...)
}

// Contacts 返回某个感染者的直接接触者序列，ID 不在结果中时返回 nil。
func (r *Result) Contacts(id string) []string {
	seq, ok := r.contacts[id]
	if !ok {
		return nil
	}
	return append([]string(nil), seq...)
}

// Counts 返回按感染者顺序排列的接触次数，供报表使用。
func (r *Result) Counts() []int {
	out := make([]int, 0, len(r.infected))
	for _, id := range r.infected {
		out = append(out, len(r.contacts[id]))
	}
	return out
}

// Map 导出 map 形式的结果，供 HTTP 层序列化。
func (r *Result) Map() map[string][]string {
	out := make(map[string][]string, len(r.infected))
	for _, id := range r.infected {
		out[id] = append([]string(nil), r.contacts[id]...)
	}
	return out
}

// Format 渲染标准输出形式：{"id": ["a", "b"], "id2": []}，键序固定。
func (r *Result) Format() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range r.infected {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(id)
		b.WriteString(`": [`)
		for j, c := range r.contacts[id] {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('"')
			b.WriteString(c)
			b.WriteByte('"')
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return b.String()
}
