package model

// All 返回需要 AutoMigrate 的全部模型，按外键依赖排序。
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&ContentEntry{},
		&Conversation{},
		&Message{},
		&AiGuideline{},
	}
}
