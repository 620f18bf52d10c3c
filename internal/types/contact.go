package types

// Contact 描述一次接触事件：agent_1 为记录方/发起方，agent_2 为被接触方。
// 记录加载后不再修改。
type Contact struct {
	Agent1 string `json:"agent_1"`
	Agent2 string `json:"agent_2"`
}

// ContactList 是按输入文件顺序排列的接触记录序列。
type ContactList []Contact
