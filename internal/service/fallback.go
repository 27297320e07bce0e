package service

import (
	"career_compass_backend/internal/model"
	"encoding/json"
	"strings"
)

// fallbackBucket 内置推荐集，AI不可用时按专业关键词选取
type fallbackBucket struct {
	keywords        []string
	recommendations []aiRecommendation
}

// 按声明顺序逐一匹配，命中第一个含关键词的桶
var fallbackBuckets = []fallbackBucket{
	{
		keywords: []string{"computer", "software", "information", "data", "it"},
		recommendations: []aiRecommendation{
			{
				CareerTitle:       "Backend Developer",
				CareerDescription: "Build and maintain the server-side logic, databases, and APIs that power applications. Work with frameworks and cloud services to deliver reliable systems.",
				MatchScore:        85,
				Reasoning:         "Your technical background and problem-solving orientation fit server-side development well.",
				RequiredSkills:    []string{"Python", "SQL", "REST APIs", "Git", "Docker", "Linux"},
				GrowthPotential:   "High",
				SalaryRange:       "$70,000 - $120,000",
				WorkEnvironment:   "Office or remote, collaborative engineering teams",
				SkillGaps: []aiSkillGap{
					{SkillName: "System Design", CurrentLevel: "beginner", RequiredLevel: "intermediate", Priority: "high", EstimatedTime: "4 months"},
					{SkillName: "Docker/Kubernetes", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "3 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Foundations", Duration: "3 months", Objectives: []string{"Master a backend language", "Learn relational databases", "Build REST APIs"}, Resources: json.RawMessage(`[{"type":"course","name":"Backend Development Fundamentals","provider":"Coursera"}]`)},
					{Phase: "Phase 2: Production Skills", Duration: "3 months", Objectives: []string{"Containerize applications", "Learn CI/CD basics", "Deploy to the cloud"}, Resources: json.RawMessage(`[{"type":"course","name":"Docker and Kubernetes","provider":"Udemy"}]`)},
				},
			},
			{
				CareerTitle:       "Data Analyst",
				CareerDescription: "Turn raw data into insights that drive business decisions. Combine SQL, spreadsheets, and visualization tools to answer questions with evidence.",
				MatchScore:        78,
				Reasoning:         "Analytical thinking and comfort with data suit an analyst track.",
				RequiredSkills:    []string{"SQL", "Excel", "Python", "Data Visualization", "Statistics"},
				GrowthPotential:   "High",
				SalaryRange:       "$55,000 - $95,000",
				WorkEnvironment:   "Office or hybrid, cross-functional teams",
				SkillGaps: []aiSkillGap{
					{SkillName: "Statistics", CurrentLevel: "beginner", RequiredLevel: "intermediate", Priority: "high", EstimatedTime: "3 months"},
					{SkillName: "Tableau/Power BI", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "2 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Core Tools", Duration: "2 months", Objectives: []string{"Learn SQL querying", "Master spreadsheet analysis"}, Resources: json.RawMessage(`[{"type":"course","name":"SQL for Data Analysis","provider":"Coursera"}]`)},
					{Phase: "Phase 2: Visualization", Duration: "2 months", Objectives: []string{"Build dashboards", "Present findings to stakeholders"}, Resources: json.RawMessage(`[{"type":"course","name":"Data Visualization","provider":"Udemy"}]`)},
				},
			},
			{
				CareerTitle:       "DevOps Engineer",
				CareerDescription: "Automate build, test, and deployment pipelines and keep production infrastructure reliable and observable.",
				MatchScore:        72,
				Reasoning:         "Interest in both development and operations points to infrastructure work.",
				RequiredSkills:    []string{"Linux", "CI/CD", "Cloud Platforms", "Scripting", "Monitoring"},
				GrowthPotential:   "High",
				SalaryRange:       "$80,000 - $130,000",
				WorkEnvironment:   "Remote-friendly, on-call rotations common",
				SkillGaps: []aiSkillGap{
					{SkillName: "Cloud Infrastructure", CurrentLevel: "beginner", RequiredLevel: "advanced", Priority: "high", EstimatedTime: "6 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Systems", Duration: "3 months", Objectives: []string{"Linux administration", "Networking basics"}, Resources: json.RawMessage(`[{"type":"course","name":"Linux Fundamentals","provider":"edX"}]`)},
					{Phase: "Phase 2: Automation", Duration: "3 months", Objectives: []string{"Build CI/CD pipelines", "Infrastructure as code"}, Resources: json.RawMessage(`[{"type":"certification","name":"AWS Solutions Architect Associate","provider":"AWS"}]`)},
				},
			},
		},
	},
	{
		keywords: []string{"account", "finance", "econom", "audit"},
		recommendations: []aiRecommendation{
			{
				CareerTitle:       "Financial Analyst",
				CareerDescription: "Evaluate financial data, build models, and advise on investment and budgeting decisions.",
				MatchScore:        84,
				Reasoning:         "Your quantitative background and attention to detail align with financial analysis.",
				RequiredSkills:    []string{"Excel", "Financial Modeling", "Accounting Principles", "Data Analysis", "Presentation"},
				GrowthPotential:   "High",
				SalaryRange:       "$60,000 - $100,000",
				WorkEnvironment:   "Office-based, corporate finance or banking",
				SkillGaps: []aiSkillGap{
					{SkillName: "Financial Modeling", CurrentLevel: "beginner", RequiredLevel: "advanced", Priority: "high", EstimatedTime: "4 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Fundamentals", Duration: "3 months", Objectives: []string{"Master Excel modeling", "Learn valuation methods"}, Resources: json.RawMessage(`[{"type":"course","name":"Financial Modeling","provider":"CFI"}]`)},
					{Phase: "Phase 2: Certification", Duration: "6 months", Objectives: []string{"Prepare for CFA Level 1"}, Resources: json.RawMessage(`[{"type":"certification","name":"CFA Level 1","provider":"CFA Institute"}]`)},
				},
			},
			{
				CareerTitle:       "Tax Accountant",
				CareerDescription: "Prepare and review tax filings, advise clients on compliance and planning strategies.",
				MatchScore:        76,
				Reasoning:         "Detail-oriented work with rules and regulations matches your profile.",
				RequiredSkills:    []string{"Tax Law", "Accounting Software", "Attention to Detail", "Client Communication"},
				GrowthPotential:   "Medium",
				SalaryRange:       "$55,000 - $90,000",
				WorkEnvironment:   "Office, seasonal peaks around filing deadlines",
				SkillGaps: []aiSkillGap{
					{SkillName: "Tax Regulations", CurrentLevel: "beginner", RequiredLevel: "advanced", Priority: "high", EstimatedTime: "6 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Accounting Core", Duration: "4 months", Objectives: []string{"Financial accounting principles", "Tax fundamentals"}, Resources: json.RawMessage(`[{"type":"course","name":"Federal Taxation","provider":"Coursera"}]`)},
					{Phase: "Phase 2: CPA Track", Duration: "12 months", Objectives: []string{"Prepare for CPA exam sections"}, Resources: json.RawMessage(`[{"type":"certification","name":"CPA","provider":"AICPA"}]`)},
				},
			},
			{
				CareerTitle:       "Auditor",
				CareerDescription: "Examine financial statements and internal controls to verify accuracy and compliance.",
				MatchScore:        70,
				Reasoning:         "Methodical verification work suits an analytical, detail-driven mindset.",
				RequiredSkills:    []string{"Auditing Standards", "Risk Assessment", "Accounting", "Report Writing"},
				GrowthPotential:   "Medium",
				SalaryRange:       "$55,000 - $85,000",
				WorkEnvironment:   "Office with client site visits",
				SkillGaps: []aiSkillGap{
					{SkillName: "Audit Procedures", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "high", EstimatedTime: "4 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Foundations", Duration: "3 months", Objectives: []string{"Learn auditing standards", "Understand internal controls"}, Resources: json.RawMessage(`[{"type":"course","name":"Auditing I","provider":"edX"}]`)},
				},
			},
		},
	},
	{
		keywords: []string{"civil", "mechanical", "electrical", "chemical", "engineering"},
		recommendations: []aiRecommendation{
			{
				CareerTitle:       "Project Engineer",
				CareerDescription: "Coordinate technical projects from design through delivery, bridging engineering teams and stakeholders.",
				MatchScore:        82,
				Reasoning:         "Engineering training plus organizational skills fit project delivery roles.",
				RequiredSkills:    []string{"Project Planning", "CAD", "Technical Documentation", "Budgeting", "Communication"},
				GrowthPotential:   "High",
				SalaryRange:       "$65,000 - $105,000",
				WorkEnvironment:   "Mix of office and site work",
				SkillGaps: []aiSkillGap{
					{SkillName: "Project Management", CurrentLevel: "beginner", RequiredLevel: "intermediate", Priority: "high", EstimatedTime: "4 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: PM Basics", Duration: "3 months", Objectives: []string{"Learn scheduling and budgeting", "Practice stakeholder communication"}, Resources: json.RawMessage(`[{"type":"certification","name":"CAPM","provider":"PMI"}]`)},
				},
			},
			{
				CareerTitle:       "Design Engineer",
				CareerDescription: "Develop and refine product or infrastructure designs using modeling tools and engineering analysis.",
				MatchScore:        77,
				Reasoning:         "Strong technical fundamentals support design-focused engineering work.",
				RequiredSkills:    []string{"CAD", "Engineering Analysis", "Materials Knowledge", "Prototyping"},
				GrowthPotential:   "Medium",
				SalaryRange:       "$60,000 - $95,000",
				WorkEnvironment:   "Office and lab environments",
				SkillGaps: []aiSkillGap{
					{SkillName: "Advanced CAD", CurrentLevel: "beginner", RequiredLevel: "advanced", Priority: "medium", EstimatedTime: "5 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Tooling", Duration: "3 months", Objectives: []string{"Master a CAD suite", "Build a design portfolio"}, Resources: json.RawMessage(`[{"type":"course","name":"SolidWorks Essentials","provider":"Udemy"}]`)},
				},
			},
			{
				CareerTitle:       "Quality Engineer",
				CareerDescription: "Ensure products and processes meet specifications through testing, inspection, and process improvement.",
				MatchScore:        71,
				Reasoning:         "Systematic and standards-driven work matches engineering discipline.",
				RequiredSkills:    []string{"Quality Standards", "Statistical Process Control", "Root Cause Analysis", "Documentation"},
				GrowthPotential:   "Medium",
				SalaryRange:       "$58,000 - $90,000",
				WorkEnvironment:   "Manufacturing facilities and offices",
				SkillGaps: []aiSkillGap{
					{SkillName: "Six Sigma", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "3 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Quality Methods", Duration: "3 months", Objectives: []string{"Learn SPC", "Earn a Six Sigma belt"}, Resources: json.RawMessage(`[{"type":"certification","name":"Six Sigma Green Belt","provider":"ASQ"}]`)},
				},
			},
		},
	},
	{
		keywords: []string{"business", "management", "marketing", "hr", "human"},
		recommendations: []aiRecommendation{
			{
				CareerTitle:       "Business Analyst",
				CareerDescription: "Analyze business processes and requirements, translating needs into actionable improvements and specifications.",
				MatchScore:        83,
				Reasoning:         "Your mix of analytical and communication skills suits requirements work.",
				RequiredSkills:    []string{"Requirements Analysis", "SQL", "Process Mapping", "Stakeholder Management", "Excel"},
				GrowthPotential:   "High",
				SalaryRange:       "$60,000 - $100,000",
				WorkEnvironment:   "Office or hybrid, project teams",
				SkillGaps: []aiSkillGap{
					{SkillName: "SQL", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "high", EstimatedTime: "2 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Analysis Toolkit", Duration: "3 months", Objectives: []string{"Learn requirements elicitation", "Practice process modeling"}, Resources: json.RawMessage(`[{"type":"certification","name":"ECBA","provider":"IIBA"}]`)},
				},
			},
			{
				CareerTitle:       "Digital Marketing Specialist",
				CareerDescription: "Plan and run online campaigns across search, social, and email channels, measuring and optimizing performance.",
				MatchScore:        75,
				Reasoning:         "Creativity combined with data awareness fits modern marketing roles.",
				RequiredSkills:    []string{"SEO", "Content Marketing", "Analytics", "Social Media", "Copywriting"},
				GrowthPotential:   "High",
				SalaryRange:       "$45,000 - $80,000",
				WorkEnvironment:   "Remote-friendly, agency or in-house",
				SkillGaps: []aiSkillGap{
					{SkillName: "Marketing Analytics", CurrentLevel: "beginner", RequiredLevel: "intermediate", Priority: "high", EstimatedTime: "3 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: Channels", Duration: "2 months", Objectives: []string{"Learn SEO fundamentals", "Run a small ad campaign"}, Resources: json.RawMessage(`[{"type":"certification","name":"Google Analytics Certification","provider":"Google"}]`)},
				},
			},
			{
				CareerTitle:       "HR Generalist",
				CareerDescription: "Support recruiting, onboarding, employee relations, and HR operations across the employee lifecycle.",
				MatchScore:        70,
				Reasoning:         "People-focused strengths translate directly into human resources work.",
				RequiredSkills:    []string{"Recruiting", "Employment Law Basics", "HRIS", "Conflict Resolution", "Communication"},
				GrowthPotential:   "Medium",
				SalaryRange:       "$48,000 - $75,000",
				WorkEnvironment:   "Office or hybrid",
				SkillGaps: []aiSkillGap{
					{SkillName: "HR Systems", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "2 months"},
				},
				LearningRoadmap: []aiRoadmapItem{
					{Phase: "Phase 1: HR Foundations", Duration: "3 months", Objectives: []string{"Learn HR fundamentals", "Understand employment law basics"}, Resources: json.RawMessage(`[{"type":"certification","name":"aPHR","provider":"HRCI"}]`)},
				},
			},
		},
	},
}

// 未命中任何桶时的通用推荐
var genericFallback = []aiRecommendation{
	{
		CareerTitle:       "Project Coordinator",
		CareerDescription: "Keep projects on track by managing schedules, communication, and documentation across teams.",
		MatchScore:        75,
		Reasoning:         "Organizational and communication skills transfer to almost any industry.",
		RequiredSkills:    []string{"Organization", "Communication", "Scheduling", "Documentation", "Teamwork"},
		GrowthPotential:   "Medium",
		SalaryRange:       "$45,000 - $70,000",
		WorkEnvironment:   "Office or hybrid, cross-functional teams",
		SkillGaps: []aiSkillGap{
			{SkillName: "Project Management Tools", CurrentLevel: "beginner", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "2 months"},
		},
		LearningRoadmap: []aiRoadmapItem{
			{Phase: "Phase 1: Coordination Basics", Duration: "2 months", Objectives: []string{"Learn a PM tool", "Practice meeting facilitation"}, Resources: json.RawMessage(`[{"type":"course","name":"Project Management Basics","provider":"Coursera"}]`)},
		},
	},
	{
		CareerTitle:       "Customer Success Specialist",
		CareerDescription: "Help customers get value from products, handling onboarding, support escalations, and renewals.",
		MatchScore:        70,
		Reasoning:         "Interpersonal skills and adaptability fit customer-facing roles across sectors.",
		RequiredSkills:    []string{"Communication", "Empathy", "Product Knowledge", "Problem Solving"},
		GrowthPotential:   "Medium",
		SalaryRange:       "$40,000 - $65,000",
		WorkEnvironment:   "Remote-friendly",
		SkillGaps: []aiSkillGap{
			{SkillName: "CRM Software", CurrentLevel: "not present", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "1 month"},
		},
		LearningRoadmap: []aiRoadmapItem{
			{Phase: "Phase 1: Customer Skills", Duration: "2 months", Objectives: []string{"Learn a CRM platform", "Practice support workflows"}, Resources: json.RawMessage(`[{"type":"course","name":"Customer Success Fundamentals","provider":"Udemy"}]`)},
		},
	},
	{
		CareerTitle:       "Operations Assistant",
		CareerDescription: "Support day-to-day business operations including logistics, reporting, and process improvement.",
		MatchScore:        65,
		Reasoning:         "A broad skill set is a good match for generalist operations work.",
		RequiredSkills:    []string{"Excel", "Organization", "Process Improvement", "Reporting"},
		GrowthPotential:   "Medium",
		SalaryRange:       "$38,000 - $60,000",
		WorkEnvironment:   "Office-based",
		SkillGaps: []aiSkillGap{
			{SkillName: "Advanced Excel", CurrentLevel: "beginner", RequiredLevel: "intermediate", Priority: "medium", EstimatedTime: "2 months"},
		},
		LearningRoadmap: []aiRoadmapItem{
			{Phase: "Phase 1: Office Toolkit", Duration: "2 months", Objectives: []string{"Master spreadsheets", "Learn reporting basics"}, Resources: json.RawMessage(`[{"type":"course","name":"Excel Skills for Business","provider":"Coursera"}]`)},
		},
	},
}

// buildFallbackRecommendations 根据专业关键词选桶并转为落库模型
// 用户无画像或专业未命中任何桶时使用通用推荐
func buildFallbackRecommendations(userID uint, profile *model.OnboardingProfile) []model.CareerRecommendation {
	selected := genericFallback

	if profile != nil && profile.FieldOfStudy != "" {
		fieldLower := strings.ToLower(profile.FieldOfStudy)
	match:
		for _, bucket := range fallbackBuckets {
			for _, keyword := range bucket.keywords {
				if strings.Contains(fieldLower, keyword) {
					selected = bucket.recommendations
					break match
				}
			}
		}
	}

	return toRecommendationModels(userID, selected)
}
