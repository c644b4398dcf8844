package model

// IssueReference is an issue key such as "EX-12"
type IssueReference string

// ResolvedIssue is the part of a tracker issue shown in announcements
type ResolvedIssue struct {
	Key     string
	Self    string // API self link
	URL     string // Browse link for humans
	Summary string
}
