package common

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap 训练器的全部按键
type KeyMap struct {
	Tutorial  key.Binding
	Automated key.Binding
	Submit    key.Binding
	Next      key.Binding
	Restart   key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// Keys 默认按键
var Keys = KeyMap{
	Tutorial:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "教学模式")),
	Automated: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "自动模式")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "提交计数")),
	Next:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "下一张")),
	Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "返回菜单")),
	Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h/?", "Hi-Lo 说明")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "关闭")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
}

// Bindings is a flat help.KeyMap.
type Bindings []key.Binding

var _ help.KeyMap = Bindings(nil)

func (b Bindings) ShortHelp() []key.Binding  { return b }
func (b Bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
