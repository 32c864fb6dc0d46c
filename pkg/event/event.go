// Package event 提供模拟核心与表现层之间的同步事件分发
//
// 核心只负责"发生了什么"（攻击、击杀、到达终点、波次完成），
// 音效、粒子、光束等表现由订阅者自行处理。分发是同步的，在当前 tick 内完成。
package event


// Type 事件类型
type Type string

// Event 事件结构
type Event struct {
	Type Type
	Data interface{} // 事件负载，具体类型见 types.go
}

// Listener 事件订阅者接口
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc 允许普通函数作为订阅者
type ListenerFunc func(e Event)

// OnEvent 实现 Listener
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Subscription 订阅凭据，用于 Unsubscribe
// 零值不对应任何订阅
type Subscription struct {
	eventType Type
	id        uint64
}

type subscriber struct {
	id       uint64
	listener Listener
}

// Dispatcher 事件分发器
// 不加锁：整个模拟在单个 goroutine 中按 tick 推进
type Dispatcher struct {
	listeners map[Type][]subscriber
	nextID    uint64
}

// NewDispatcher 创建新的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]subscriber),
	}
}

// Subscribe 订阅指定类型的事件，返回取消订阅用的凭据
func (d *Dispatcher) Subscribe(eventType Type, listener Listener) Subscription {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscriber{id: d.nextID, listener: listener})
	return Subscription{eventType: eventType, id: d.nextID}
}

// SubscribeFunc 以函数形式订阅事件
func (d *Dispatcher) SubscribeFunc(eventType Type, fn func(e Event)) Subscription {
	return d.Subscribe(eventType, ListenerFunc(fn))
}

// Unsubscribe 取消一次订阅，重复取消或零值凭据不做任何事
// 可以在事件回调中调用：正在进行的分发仍按原列表通知
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	listeners := d.listeners[sub.eventType]
	for i, s := range listeners {
		if s.id == sub.id {
			remaining := make([]subscriber, 0, len(listeners)-1)
			remaining = append(remaining, listeners[:i]...)
			d.listeners[sub.eventType] = append(remaining, listeners[i+1:]...)
			return
		}
	}
}

// Dispatch 同步地把事件发送给所有订阅者
// d 为 nil 时静默忽略，方便测试中不关心事件的系统传 nil
func (d *Dispatcher) Dispatch(e Event) {
	if d == nil {
		return
	}
	for _, s := range d.listeners[e.Type] {
		s.listener.OnEvent(e)
	}
}
