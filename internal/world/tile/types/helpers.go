// Package types регистрирует дескрипторы всех типов тайлов игры.
// Таблица плоская: наследование выражено полем Base, а не иерархией типов.
package types

func ptr[T any](v T) *T { return &v }
