package events

import "github.com/atomicstack/popup-menu/internal/logging"

type MenuTracer struct{}

type RelayTracer struct{}

type FilterTracer struct{}

type KeyTracer struct{}

type StoreTracer struct{}

var (
	Menu   = MenuTracer{}
	Relay  = RelayTracer{}
	Filter = FilterTracer{}
	Key    = KeyTracer{}
	Store  = StoreTracer{}
)

func (MenuTracer) Seed(menuID, key string) {
	logging.Trace("menu.seed", map[string]interface{}{"menu": menuID, "active": key})
}

func (MenuTracer) Mount(menuID string, level int) {
	logging.Trace("menu.mount", map[string]interface{}{"menu": menuID, "level": level})
}

func (MenuTracer) Reconcile(menuID, from, to, reason string) {
	logging.Trace("menu.reconcile", map[string]interface{}{
		"menu":   menuID,
		"from":   from,
		"to":     to,
		"reason": reason,
	})
}

func (MenuTracer) Step(menuID, from, to, result string) {
	logging.Trace("menu.step", map[string]interface{}{
		"menu":   menuID,
		"from":   from,
		"to":     to,
		"result": result,
	})
}

func (MenuTracer) Hover(menuID, key string, hover bool) {
	logging.Trace("menu.hover", map[string]interface{}{"menu": menuID, "key": key, "hover": hover})
}

func (MenuTracer) Activate(menuID, key string) {
	logging.Trace("menu.activate", map[string]interface{}{"menu": menuID, "key": key})
}

func (MenuTracer) Delegated(menuID, key, keyName string) {
	logging.Trace("menu.keydown.delegated", map[string]interface{}{"menu": menuID, "item": key, "key": keyName})
}

func (MenuTracer) Duplicate(menuID string, keys []string) {
	logging.Trace("menu.registry.duplicate", map[string]interface{}{"menu": menuID, "keys": keys})
}

func (MenuTracer) Destroy(menuID string) {
	logging.Trace("menu.destroy", map[string]interface{}{"menu": menuID})
}

func (RelayTracer) Select(menuID, key string) {
	logging.Trace("relay.select", map[string]interface{}{"menu": menuID, "key": key})
}

func (RelayTracer) Deselect(menuID, key string) {
	logging.Trace("relay.deselect", map[string]interface{}{"menu": menuID, "key": key})
}

func (RelayTracer) Click(menuID, key string) {
	logging.Trace("relay.click", map[string]interface{}{"menu": menuID, "key": key})
}

func (RelayTracer) OpenChange(menuID, key string, open bool) {
	logging.Trace("relay.open-change", map[string]interface{}{"menu": menuID, "key": key, "open": open})
}

func (RelayTracer) Destroy(menuID, key string) {
	logging.Trace("relay.destroy", map[string]interface{}{"menu": menuID, "key": key})
}

func (KeyTracer) Dispatch(keyName string, handled bool) {
	logging.Trace("key.dispatch", map[string]interface{}{"key": keyName, "handled": handled})
}

func (KeyTracer) Quit(keyName string) {
	logging.Trace("key.quit", map[string]interface{}{"key": keyName})
}

func (FilterTracer) Changed(levelID, filter string, visible int) {
	logging.Trace("filter.change", map[string]interface{}{"level": levelID, "filter": filter, "visible": visible})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (StoreTracer) Changed(openKeys, selectedKeys []string) {
	logging.Trace("store.change", map[string]interface{}{"open": openKeys, "selected": selectedKeys})
}
