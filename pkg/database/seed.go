package database

import (
	"career_compass_backend/internal/model"
	"encoding/json"
	"log"

	"gorm.io/gorm"
)

func opts(values ...string) json.RawMessage {
	data, _ := json.Marshal(values)
	return data
}

func field(name string) *string {
	return &name
}

// SeedQuizQuestions 初始化测评题库，已有数据时跳过
func SeedQuizQuestions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.QuizQuestion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	questions := []model.QuizQuestion{
		// 通用题目（field_of_study 为空，面向所有用户）
		{Section: "personality", QuestionText: "How do you prefer to work?", QuestionType: model.QuestionMultipleChoice, Options: opts("Independently", "In a team", "Mix of both", "Leading others"), Order: 1, IsActive: true},
		{Section: "personality", QuestionText: "How would you describe your problem-solving approach?", QuestionType: model.QuestionMultipleChoice, Options: opts("Analytical and data-driven", "Creative and innovative", "Practical and hands-on", "Strategic and big-picture"), Order: 2, IsActive: true},
		{Section: "personality", QuestionText: "How comfortable are you with risk-taking?", QuestionType: model.QuestionScale, Options: opts("1", "2", "3", "4", "5"), Order: 3, IsActive: true},
		{Section: "personality", QuestionText: "Do you prefer structured routines or flexibility?", QuestionType: model.QuestionMultipleChoice, Options: opts("Highly structured", "Somewhat structured", "Flexible", "Highly flexible"), Order: 4, IsActive: true},

		{Section: "skills", QuestionText: "Rate your technical/computer skills", QuestionType: model.QuestionScale, Options: opts("1", "2", "3", "4", "5"), Order: 5, IsActive: true},
		{Section: "skills", QuestionText: "Rate your communication skills", QuestionType: model.QuestionScale, Options: opts("1", "2", "3", "4", "5"), Order: 6, IsActive: true},
		{Section: "skills", QuestionText: "Which skills do you excel at?", QuestionType: model.QuestionMultiSelect, Options: opts("Programming/Coding", "Data Analysis", "Design/Creativity", "Writing/Content", "Public Speaking", "Project Management", "Sales/Persuasion", "Teaching/Mentoring"), Order: 7, IsActive: true},
		{Section: "skills", QuestionText: "Rate your leadership abilities", QuestionType: model.QuestionScale, Options: opts("1", "2", "3", "4", "5"), Order: 8, IsActive: true},

		{Section: "interests", QuestionText: "Which areas interest you the most?", QuestionType: model.QuestionMultiSelect, Options: opts("Technology & Software", "Healthcare & Medicine", "Business & Finance", "Education & Training", "Arts & Entertainment", "Science & Research", "Marketing & Communications", "Engineering & Manufacturing"), Order: 9, IsActive: true},
		{Section: "interests", QuestionText: "What type of impact do you want to make?", QuestionType: model.QuestionMultipleChoice, Options: opts("Help individuals directly", "Solve complex problems", "Create innovative products", "Build sustainable systems", "Educate and empower others"), Order: 10, IsActive: true},
		{Section: "interests", QuestionText: "Are you interested in emerging technologies?", QuestionType: model.QuestionMultipleChoice, Options: opts("Very interested", "Somewhat interested", "Neutral", "Not interested"), Order: 11, IsActive: true},

		{Section: "work_preferences", QuestionText: "Preferred work environment?", QuestionType: model.QuestionMultipleChoice, Options: opts("Remote", "Office", "Hybrid", "Travel/Field work"), Order: 12, IsActive: true},
		{Section: "work_preferences", QuestionText: "Preferred work hours?", QuestionType: model.QuestionMultipleChoice, Options: opts("Traditional 9-5", "Flexible hours", "Night shifts", "Project-based"), Order: 13, IsActive: true},
		{Section: "work_preferences", QuestionText: "How important is work-life balance?", QuestionType: model.QuestionScale, Options: opts("1", "2", "3", "4", "5"), Order: 14, IsActive: true},
		{Section: "work_preferences", QuestionText: "Preferred company size?", QuestionType: model.QuestionMultipleChoice, Options: opts("Startup (1-50)", "Small (51-200)", "Medium (201-1000)", "Large (1000+)", "No preference"), Order: 15, IsActive: true},
		{Section: "work_preferences", QuestionText: "How important is salary vs. job satisfaction?", QuestionType: model.QuestionMultipleChoice, Options: opts("Salary is primary concern", "Prefer higher salary", "Equal importance", "Prefer job satisfaction", "Job satisfaction is primary concern"), Order: 16, IsActive: true},

		// 专业定向题目，仅推送给对应专业的用户
		{Section: "technical_skills", FieldOfStudy: field("Computer Science"), QuestionText: "Which programming paradigm do you prefer?", QuestionType: model.QuestionMultipleChoice, Options: opts("Object-Oriented", "Functional", "Procedural", "No preference", "Still learning"), Order: 17, IsActive: true},
		{Section: "technical_skills", FieldOfStudy: field("Computer Science"), QuestionText: "What type of development interests you most?", QuestionType: model.QuestionMultiSelect, Options: opts("Frontend/UI Development", "Backend/Server Development", "Mobile App Development", "Game Development", "Machine Learning/AI", "Cloud/DevOps", "Database Management", "Cybersecurity"), Order: 18, IsActive: true},
		{Section: "technical_skills", FieldOfStudy: field("Information Technology"), QuestionText: "Which IT areas interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Network Administration", "System Administration", "Cloud Infrastructure", "IT Security", "Database Administration", "Technical Support", "IT Project Management"), Order: 19, IsActive: true},
		{Section: "technical_skills", FieldOfStudy: field("Data Science"), QuestionText: "Which data science areas excite you?", QuestionType: model.QuestionMultiSelect, Options: opts("Machine Learning", "Deep Learning/Neural Networks", "Natural Language Processing", "Computer Vision", "Data Visualization", "Statistical Analysis", "Big Data Processing"), Order: 20, IsActive: true},

		{Section: "accounting_skills", FieldOfStudy: field("Accounting"), QuestionText: "Which accounting area interests you most?", QuestionType: model.QuestionMultiSelect, Options: opts("Tax Accounting", "Auditing", "Forensic Accounting", "Management Accounting", "Financial Accounting", "Bookkeeping", "Payroll Management"), Order: 21, IsActive: true},
		{Section: "accounting_skills", FieldOfStudy: field("Accounting"), QuestionText: "Do you prefer detail-oriented tasks or big-picture analysis?", QuestionType: model.QuestionMultipleChoice, Options: opts("Very detail-oriented", "Somewhat detail-oriented", "Balanced", "Big-picture focused"), Order: 22, IsActive: true},
		{Section: "finance_skills", FieldOfStudy: field("Finance"), QuestionText: "Which finance career paths interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Investment Banking", "Financial Planning", "Risk Management", "Corporate Finance", "Financial Analysis", "Portfolio Management", "Real Estate Finance"), Order: 23, IsActive: true},
		{Section: "business_skills", FieldOfStudy: field("Business Administration"), QuestionText: "Which business functions appeal to you?", QuestionType: model.QuestionMultiSelect, Options: opts("Operations Management", "Strategic Planning", "Business Analysis", "Project Management", "Supply Chain Management", "Quality Management", "Business Development"), Order: 24, IsActive: true},
		{Section: "business_skills", FieldOfStudy: field("BBA"), QuestionText: "What business role excites you most?", QuestionType: model.QuestionMultipleChoice, Options: opts("Leading teams and projects", "Analyzing data and trends", "Building client relationships", "Developing strategies", "Managing operations"), Order: 25, IsActive: true},

		{Section: "engineering_skills", FieldOfStudy: field("Electrical Engineering"), QuestionText: "Which electrical engineering areas interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Power Systems", "Electronics Design", "Control Systems", "Signal Processing", "Telecommunications", "Embedded Systems", "Renewable Energy Systems"), Order: 26, IsActive: true},
		{Section: "engineering_skills", FieldOfStudy: field("Civil Engineering"), QuestionText: "Which civil engineering specializations appeal to you?", QuestionType: model.QuestionMultiSelect, Options: opts("Structural Engineering", "Transportation Engineering", "Environmental Engineering", "Geotechnical Engineering", "Water Resources", "Construction Management", "Urban Planning"), Order: 27, IsActive: true},
		{Section: "engineering_skills", FieldOfStudy: field("Mechanical Engineering"), QuestionText: "What mechanical engineering areas interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Automotive Engineering", "Aerospace Engineering", "Robotics", "HVAC Systems", "Manufacturing", "Energy Systems", "Product Design"), Order: 28, IsActive: true},
		{Section: "engineering_skills", FieldOfStudy: field("Chemical Engineering"), QuestionText: "Which chemical engineering fields interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Process Engineering", "Pharmaceutical Manufacturing", "Petrochemical Industry", "Environmental Engineering", "Materials Science", "Food Processing", "Biotechnology"), Order: 29, IsActive: true},

		{Section: "social_science_skills", FieldOfStudy: field("International Relations"), QuestionText: "Which IR career paths interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Diplomacy/Foreign Service", "International Development", "Global Policy Analysis", "International NGOs", "Intelligence Analysis", "International Trade", "Conflict Resolution"), Order: 30, IsActive: true},
		{Section: "social_science_skills", FieldOfStudy: field("Political Science"), QuestionText: "What political science careers interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Policy Analysis", "Political Consulting", "Government Relations", "Campaign Management", "Public Administration", "Legislative Affairs", "Political Research"), Order: 31, IsActive: true},
		{Section: "analytical_skills", FieldOfStudy: field("Economics"), QuestionText: "Which economics career paths appeal to you?", QuestionType: model.QuestionMultiSelect, Options: opts("Economic Research", "Data Analysis", "Policy Economics", "Financial Economics", "International Economics", "Econometrics", "Economic Consulting"), Order: 32, IsActive: true},

		{Section: "marketing_skills", FieldOfStudy: field("Marketing"), QuestionText: "Which marketing specializations interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Digital Marketing", "Brand Management", "Market Research", "Content Marketing", "Social Media Marketing", "Product Marketing", "Marketing Analytics"), Order: 33, IsActive: true},
		{Section: "hr_skills", FieldOfStudy: field("Human Resources"), QuestionText: "Which HR areas appeal to you?", QuestionType: model.QuestionMultiSelect, Options: opts("Talent Acquisition/Recruiting", "Employee Relations", "Training & Development", "Compensation & Benefits", "HR Analytics", "Organizational Development", "HR Technology"), Order: 34, IsActive: true},

		{Section: "science_skills", FieldOfStudy: field("Mathematics"), QuestionText: "Which mathematical career paths interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Actuarial Science", "Data Science", "Quantitative Analysis", "Operations Research", "Statistical Analysis", "Mathematics Education", "Applied Mathematics"), Order: 35, IsActive: true},
		{Section: "science_skills", FieldOfStudy: field("Physics"), QuestionText: "Which physics specializations interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Research Physics", "Medical Physics", "Engineering Physics", "Computational Physics", "Astrophysics", "Applied Physics", "Physics Education"), Order: 36, IsActive: true},
		{Section: "psychology_skills", FieldOfStudy: field("Psychology"), QuestionText: "Which psychology career paths interest you?", QuestionType: model.QuestionMultiSelect, Options: opts("Clinical Psychology", "Counseling", "Organizational Psychology", "Research Psychology", "School Psychology", "Forensic Psychology", "Sports Psychology"), Order: 37, IsActive: true},
	}

	if err := db.Create(&questions).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d quiz questions", len(questions))
	return nil
}
