package loader

// Starter CSV templates for a fresh workspace. They mirror the formats
// ReadDrivers, ReadCards and ReadTable accept, so users can download,
// edit and re-import them.

// DriverTemplateCSV is a starter driver-definition file
const DriverTemplateCSV = `id,label,survey_items,range
DRV_001,Psychological Safety,"Q1,Q2,Q3",1-5
DRV_002,Workload Balance,"Q4,Q5",1-5
`

// CardTemplateCSV is a starter decision-card file
const CardTemplateCSV = `id,title,decision_question,stakeholders,drivers,kpis,rules
D001,Prevent Junior Turnover,Should we implement a retention program?,"HR,Dept Leads","DRV_001,DRV_002","turnover_rate,overtime_hours",psychological_safety < 3.0 : RED : Safety is low | overtime_hours > 40 : YELLOW : High overtime
`

// SurveyTemplateCSV is a starter survey-response file. The employee_id
// column is an identifier and is dropped on import.
const SurveyTemplateCSV = `employee_id,Q1,Q2,Q3,Q4,Q5
u001,4,5,4,3,2
u002,2,1,2,5,5
`
