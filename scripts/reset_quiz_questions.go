// 重置测评题库脚本
//
// 清空现有题目、答案和提交记录后重新灌入内置题库。
// 题库结构调整（如新增专业定向题目）后手动执行一次。
//
// 用法: go run scripts/reset_quiz_questions.go

package main

import (
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/model"
	"career_compass_backend/pkg/database"
	"career_compass_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if err := db.Exec("DELETE FROM quiz_answers").Error; err != nil {
		log.Fatalf("清空答案失败: %v", err)
	}
	if err := db.Exec("DELETE FROM quiz_submissions").Error; err != nil {
		log.Fatalf("清空提交记录失败: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&model.QuizQuestion{}).Error; err != nil {
		log.Fatalf("清空题目失败: %v", err)
	}

	if err := database.SeedQuizQuestions(db); err != nil {
		log.Fatalf("重新灌入题库失败: %v", err)
	}

	log.Println("题库重置完成")
}
