package model

const DefaultTimeLayout = "2006-01-02T15:04:05Z07:00"
